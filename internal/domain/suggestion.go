package domain

import "time"

type ProductSuggestion struct {
	ID             string    `json:"id" gorm:"primaryKey;size:36"`
	UserID         string    `json:"user_id" gorm:"size:36;index;not null"`
	SuggestionText string    `json:"suggestion_text" gorm:"type:text;not null"`
	Category       string    `json:"category,omitempty" gorm:"size:100"`
	BudgetRange    string    `json:"budget_range,omitempty" gorm:"size:64"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}
