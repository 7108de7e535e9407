package mail

import (
	"bytes"
	"html/template"
)

const (
	SubjectNewJobPost    = "New Job Post"
	SubjectResetPassword = "Reset Password"
)

var newJobTmpl = template.Must(template.New("new_job").Parse(`<p>A new job has been posted which matches your profile. Job details:</p>
<div style="border: 1px solid black; padding: 2%; width: fit-content;">
<h4><u>Job Title:</u> {{.Title}}</h4>
<h4><u>Company:</u> {{.Company}}</h4>
<h4><u>Location:</u> {{.Location}}</h4>
</div>
<p>Use the link below to view the job post.</p>
<a href="{{.URL}}">Visit Job Post</a>
`))

var resetPasswordTmpl = template.Must(template.New("reset_password").Parse(`<p>Use this link to reset your password: <a href="{{.URL}}">Reset Password</a></p>
<p>This link will expire in {{.ExpiresInMinutes}} minutes.</p>
`))

type NewJobData struct {
	Title    string
	Company  string
	Location string
	URL      string
}

type ResetPasswordData struct {
	URL              string
	ExpiresInMinutes int
}

func NewJobPost(to string, d NewJobData) (Message, error) {
	var buf bytes.Buffer
	if err := newJobTmpl.Execute(&buf, d); err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: SubjectNewJobPost, HTML: buf.String()}, nil
}

func ResetPassword(to string, d ResetPasswordData) (Message, error) {
	var buf bytes.Buffer
	if err := resetPasswordTmpl.Execute(&buf, d); err != nil {
		return Message{}, err
	}
	return Message{To: to, Subject: SubjectResetPassword, HTML: buf.String()}, nil
}
