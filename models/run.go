package models

import "time"

// Run statuses, in the order a run moves through them.
const (
	RunQueued     = "queued"
	RunProcessing = "processing"
	RunDone       = "done"
	RunFailed     = "failed"
)

// AnalysisRun is one execution of the pipeline over an uploaded or configured survey.
type AnalysisRun struct {
	JobID          string     `gorm:"column:job_id;primaryKey;size:36" json:"job_id"`
	SourceName     string     `gorm:"column:source_name;size:255" json:"source_name"`
	CreatedBy      string     `gorm:"column:created_by;size:255;index" json:"created_by"`
	Status         string     `gorm:"column:status;size:20;default:'queued'" json:"status"`
	OptionsJSON    string     `gorm:"column:options_json;type:text" json:"-"`
	OutputDir      string     `gorm:"column:output_dir;type:text" json:"-"`
	Participants   int        `gorm:"column:participants" json:"participants"`
	Responses      int        `gorm:"column:responses" json:"responses"`
	OverallNPS     *float64   `gorm:"column:overall_nps" json:"overall_nps,omitempty"`
	MeanScore      *float64   `gorm:"column:mean_score" json:"mean_score,omitempty"`
	ShareTokenHash string     `gorm:"column:share_token_hash;type:text" json:"-"`
	ErrorMsg       *string    `gorm:"column:error_msg;type:text" json:"error_msg,omitempty"`
	FinishedAt     *time.Time `gorm:"column:finished_at" json:"finished_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	Tracks    []TrackScore `gorm:"foreignKey:JobID;references:JobID;constraint:OnDelete:CASCADE" json:"tracks,omitempty"`
	Artifacts []Artifact   `gorm:"foreignKey:JobID;references:JobID;constraint:OnDelete:CASCADE" json:"artifacts,omitempty"`
}

func (AnalysisRun) TableName() string {
	return "analysis_runs"
}

// TrackScore is the NPS breakdown of one track in a run.
type TrackScore struct {
	ID         uint    `gorm:"primaryKey;autoIncrement" json:"-"`
	JobID      string  `gorm:"column:job_id;size:36;index" json:"-"`
	Position   int     `gorm:"column:position" json:"-"`
	Track      string  `gorm:"column:track;type:text" json:"track"`
	NPS        float64 `gorm:"column:nps" json:"nps"`
	Responses  int     `gorm:"column:responses" json:"responses"`
	Promoters  int     `gorm:"column:promoters" json:"promoters"`
	Passives   int     `gorm:"column:passives" json:"passives"`
	Detractors int     `gorm:"column:detractors" json:"detractors"`
	Mean       float64 `gorm:"column:mean" json:"mean"`
}

func (TrackScore) TableName() string {
	return "track_scores"
}

// Artifact is a file a run produced.
type Artifact struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	JobID     string    `gorm:"column:job_id;size:36;uniqueIndex:idx_artifact_name" json:"-"`
	Name      string    `gorm:"column:name;size:255;uniqueIndex:idx_artifact_name" json:"name"`
	Kind      string    `gorm:"column:kind;size:10" json:"kind"`
	Path      string    `gorm:"column:path;type:text" json:"-"`
	Size      int64     `gorm:"column:size" json:"size"`
	PublicURL *string   `gorm:"column:public_url;type:text" json:"public_url,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Artifact) TableName() string {
	return "artifacts"
}
