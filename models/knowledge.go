package models

import "time"

// FAQEntry is one question/answer pair from the salon info file.
type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// KnowledgeEntry is a persisted FAQ with its embedding vector.
type KnowledgeEntry struct {
	ID        string    `bson:"id" json:"id"`
	Question  string    `bson:"question" json:"question"`
	Answer    string    `bson:"answer" json:"answer"`
	Category  string    `bson:"category" json:"category"`
	Source    string    `bson:"source" json:"source"`
	Vector    []float32 `bson:"vector" json:"-"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// KnowledgeHit is the best match returned by a semantic search.
type KnowledgeHit struct {
	Question string  `json:"question"`
	Answer   string  `json:"answer"`
	Score    float64 `json:"score"`
}
