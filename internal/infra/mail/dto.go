package mail

type AccessEmailData struct {
	Name       string
	CourseName string
	AccessLink string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
