package models

type MatchRequest struct {
	JobTitle   string `json:"job_title"`
	JDText     string `json:"jd_text"`
	JDFilePath string `json:"-"`
}

type ShortlistRequest struct {
	JobTitle string       `json:"job_title"`
	Report   *MatchReport `json:"report"`
}

type SimilarRequest struct {
	JDText string `json:"jd_text"`
	Limit  int    `json:"limit"`
}

type JobDescriptionResponse struct {
	JobTitle    string `json:"job_title"`
	Description string `json:"description"`
}

type ApplicantResponse struct {
	ApplicantName    string `json:"applicant_name"`
	EmailID          string `json:"email_id"`
	ResumeAttachment string `json:"resume_attachment"`
}

type SimilarResume struct {
	Reference string  `json:"reference"`
	Score     float32 `json:"score"`
}
