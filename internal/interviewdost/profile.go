package interviewdost

import (
	"context"
	"fmt"
	"io"
)

// CandidateProfile is the enrichment request payload. It is built client-side
// from form state and never mutated once submitted.
type CandidateProfile struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Role            string   `json:"role,omitempty"`
	Age             *int     `json:"age,omitempty"`
	TechStack       []string `json:"tech_stack"`
	WorkExperiences []string `json:"work_experiences"`
	Projects        []string `json:"projects"`
	CompaniesWorked []string `json:"companies_worked"`
	TargetRole      string   `json:"target_role,omitempty"`
	TargetCompany   string   `json:"target_company,omitempty"`
	ResumeText      string   `json:"resume_text,omitempty"`
}

// EnrichmentArtifact is the skill/summary artifact produced by the enrichment
// endpoint.
type EnrichmentArtifact struct {
	UserID        int      `json:"user_id"`
	ResumeSummary string   `json:"resume_summary"`
	Skills        []string `json:"skills"`
}

type uploadResumeResponse struct {
	ResumeText string `json:"resume_text"`
}

// EnrichProfile submits the candidate profile for enrichment.
func (c *Client) EnrichProfile(ctx context.Context, profile CandidateProfile) (*EnrichmentArtifact, error) {
	url := fmt.Sprintf("%s/profile/enrich", c.APIURL)

	var artifact EnrichmentArtifact
	if err := c.postJSON(ctx, url, profile, &artifact); err != nil {
		return nil, err
	}

	return &artifact, nil
}

// UploadResume sends a resume document to the extraction endpoint and returns
// the extracted text.
func (c *Client) UploadResume(ctx context.Context, filename string, file io.Reader) (string, error) {
	url := fmt.Sprintf("%s/profile/upload_resume", c.APIURL)

	var resp uploadResumeResponse
	if err := c.postFile(ctx, url, "file", filename, file, &resp); err != nil {
		return "", err
	}

	return resp.ResumeText, nil
}
