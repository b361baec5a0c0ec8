package interviewdost

import (
	"context"
	"fmt"
)

type Candidate struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role,omitempty"`
	ResumeSummary string `json:"resume_summary,omitempty"`
}

type StartInterviewRequest struct {
	Candidate     Candidate `json:"candidate"`
	InterviewerID int       `json:"interviewer_id"`
	InterviewType string    `json:"interview_type,omitempty"`
	Skills        []string  `json:"skills"`
}

type Question struct {
	QuestionID int    `json:"question_id"`
	Text       string `json:"text"`
}

// InterviewSession is the creation response. ConversationURL and TavusError
// describe the avatar channel independently and must be read together: a set
// TavusError with an empty ConversationURL means the channel failed while the
// interview itself is still trackable via text.
type InterviewSession struct {
	InterviewID     int      `json:"interview_id"`
	Question        Question `json:"question"`
	ConversationURL string   `json:"conversation_url,omitempty"`
	TavusError      string   `json:"tavus_error,omitempty"`
}

type answerRequest struct {
	AnswerText string `json:"answer_text"`
}

// AnswerOutcome is the response to a submitted answer. FollowUpQuestion is set
// when the interviewer has another question; Done marks the session complete.
type AnswerOutcome struct {
	InterviewID      int       `json:"interview_id"`
	QuestionID       int       `json:"question_id"`
	FollowUpQuestion *Question `json:"follow_up_question,omitempty"`
	Done             bool      `json:"done"`
}

// StartInterview creates a new interview session. Every call creates a fresh
// session with a new identifier; prior sessions are neither resumed nor
// cancelled from here.
func (c *Client) StartInterview(ctx context.Context, req StartInterviewRequest) (*InterviewSession, error) {
	url := fmt.Sprintf("%s/interview/start", c.APIURL)

	var session InterviewSession
	if err := c.postJSON(ctx, url, req, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// AnswerQuestion submits the candidate's answer to a question of an active
// interview. The answer is scored server-side.
func (c *Client) AnswerQuestion(ctx context.Context, interviewID, questionID int, answerText string) (*AnswerOutcome, error) {
	url := fmt.Sprintf("%s/interview/%d/questions/%d/answer", c.APIURL, interviewID, questionID)

	var outcome AnswerOutcome
	if err := c.postJSON(ctx, url, &answerRequest{AnswerText: answerText}, &outcome); err != nil {
		return nil, err
	}

	return &outcome, nil
}
