package profile

import (
	htmltmpl "html/template"
	texttmpl "text/template"
)

var (
	welcomeTextTmpl = texttmpl.Must(texttmpl.New("welcome.txt").Parse(`Hi {{.Data.Name}},

Welcome to {{.AppName}}! Add your subjects, then track every assignment, quiz and project until it is done.

Get started: {{.FrontendBaseURL}}

The {{.AppName}} Team
`))

	welcomeHTMLTmpl = htmltmpl.Must(htmltmpl.New("welcome.html").Parse(`<p>Hi {{.Data.Name}},</p>
<p>Welcome to {{.AppName}}! Add your subjects, then track every assignment, quiz and project until it is done.</p>
<p><a href="{{.FrontendBaseURL}}">Get started</a></p>
<p>The {{.AppName}} Team</p>
`))
)
