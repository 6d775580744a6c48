package models

import "github.com/vnkhanh/survey-insights/survey"

// Response is an imported survey row kept with its run.
type Response struct {
	ID                 uint     `gorm:"primaryKey;autoIncrement" json:"-"`
	JobID              string   `gorm:"column:job_id;size:36;index" json:"-"`
	Row                int      `gorm:"column:row_index" json:"row"`
	Track              string   `gorm:"column:track;type:text;index" json:"track"`
	RawScore           string   `gorm:"column:raw_score;type:text" json:"raw_score"`
	Score              *float64 `gorm:"column:score" json:"score"`
	Improve            string   `gorm:"column:improve;type:text" json:"improve,omitempty"`
	Valuable           string   `gorm:"column:valuable;type:text" json:"valuable,omitempty"`
	Favorite           string   `gorm:"column:favorite;type:text" json:"favorite,omitempty"`
	FavoriteMotivation string   `gorm:"column:favorite_motivation;type:text" json:"favorite_motivation,omitempty"`
	SecondFavorite     string   `gorm:"column:second_favorite;type:text" json:"second_favorite,omitempty"`
	SecondMotivation   string   `gorm:"column:second_motivation;type:text" json:"second_motivation,omitempty"`
	AnythingElse       string   `gorm:"column:anything_else;type:text" json:"anything_else,omitempty"`
}

func (Response) TableName() string {
	return "responses"
}

// NewResponse copies a parsed survey row for storage.
func NewResponse(jobID string, r survey.Response) Response {
	m := Response{
		JobID:              jobID,
		Row:                r.Row,
		Track:              r.Track,
		RawScore:           r.RawScore,
		Improve:            r.Improve,
		Valuable:           r.Valuable,
		Favorite:           r.Favorite,
		FavoriteMotivation: r.FavoriteMotivation,
		SecondFavorite:     r.SecondFavorite,
		SecondMotivation:   r.SecondMotivation,
		AnythingElse:       r.AnythingElse,
	}
	if r.HasScore {
		s := r.Score
		m.Score = &s
	}
	return m
}
