package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

var accessTemplate = template.Must(template.New("access").Parse(`
<html>
  <body>
    <p>Olá {{.Name}},</p>
    <p>Sua matrícula em <strong>{{.CourseName}}</strong> está confirmada! 🎉</p>
    {{if .AccessLink}}<p>Acesse a plataforma por aqui: <a href="{{.AccessLink}}">{{.AccessLink}}</a></p>{{end}}
    <p>Bons estudos!</p>
  </body>
</html>
`))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendAccess manda o email de acesso quando o lead fecha matrícula.
func (s *EmailSender) SendAccess(to, name, courseName, accessLink string) error {
	data := AccessEmailData{
		Name:       name,
		CourseName: courseName,
		AccessLink: accessLink,
	}

	var body bytes.Buffer
	if err := accessTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("erro ao processar template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Bem-vindo(a), %s! Seu acesso chegou 🚀", name))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}

	return nil
}
