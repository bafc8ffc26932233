package email

import (
	"bytes"
	"html/template"
)

const brandColor = "#4a7c59"

// BaseEmailData contains data for the base email wrapper
type BaseEmailData struct {
	Content template.HTML
	Subject string
}

// baseEmailTemplate is the shared wrapper for all emails
const baseEmailTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Subject}}</title>
    <style>
        body {
            font-family: 'Helvetica Neue', Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            margin: 0;
            padding: 0;
            background-color: #f4f7f5;
        }
        .email-wrapper {
            max-width: 600px;
            margin: 0 auto;
            background-color: #ffffff;
        }
        .header {
            background: linear-gradient(135deg, #4a7c59 0%, #3a6548 100%);
            padding: 28px 30px;
            text-align: center;
        }
        .brand-name {
            font-size: 26px;
            font-weight: 700;
            letter-spacing: 1px;
            color: #ffffff;
            margin: 0;
        }
        .brand-tagline {
            font-size: 13px;
            color: rgba(255, 255, 255, 0.85);
            margin: 6px 0 0 0;
        }
        .content {
            padding: 32px 30px;
        }
        .button {
            display: inline-block;
            padding: 12px 28px;
            background-color: #4a7c59;
            color: #ffffff !important;
            text-decoration: none;
            border-radius: 24px;
            font-weight: 600;
        }
        .footer {
            background-color: #2f3b33;
            color: #c9d3cc;
            padding: 24px 30px;
            text-align: center;
            font-size: 13px;
        }
        .footer a {
            color: #a8d5b5;
            text-decoration: none;
        }
        @media only screen and (max-width: 600px) {
            .content {
                padding: 24px 18px;
            }
            .brand-name {
                font-size: 22px;
            }
        }
    </style>
</head>
<body>
    <div class="email-wrapper">
        <div class="header">
            <p class="brand-name">Roi Beauty Essence</p>
            <p class="brand-tagline">Premium Skincare Solutions</p>
        </div>

        <div class="content">
            {{.Content}}
        </div>

        <div class="footer">
            <strong style="color: #fff;">Roi Beauty Essence</strong><br>
            <a href="mailto:support@roibeauty.com">support@roibeauty.com</a>
            <div style="margin-top: 14px; font-size: 11px; color: #8a968d;">
                You are receiving this email because of activity on your Roi Beauty account.
            </div>
        </div>
    </div>
</body>
</html>
`

var baseTemplate = template.Must(template.New("base").Parse(baseEmailTemplate))

// WrapEmailContent wraps content in the base email template
func WrapEmailContent(content string, subject string) (string, error) {
	data := BaseEmailData{
		Content: template.HTML(content),
		Subject: subject,
	}

	var result bytes.Buffer
	if err := baseTemplate.Execute(&result, data); err != nil {
		return "", err
	}
	return result.String(), nil
}
