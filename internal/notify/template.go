package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

// ReminderParams feeds the late-payment email template.
type ReminderParams struct {
	TenantName   string
	PropertyName string
	AmountDue    float64
	DaysOverdue  int
	DueDate      string // formatted for display, e.g. "02 January 2026"
}

// Amounts are shown in Omani rial, which carries three decimal places.
func (p ReminderParams) AmountDisplay() string {
	return fmt.Sprintf("OMR %.3f", p.AmountDue)
}

var reminderTmpl = template.Must(template.New("payment_reminder").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="margin:0;padding:0;font-family:'Segoe UI',Tahoma,sans-serif;background-color:#f5f5f5;">
  <table width="100%" cellpadding="0" cellspacing="0" style="max-width:600px;margin:0 auto;background-color:#ffffff;">
    <tr>
      <td style="background-color:#605c53;padding:30px;text-align:center;">
        <h1 style="color:#cea26e;margin:0;font-size:24px;">Telal Al-Bidaya</h1>
        <p style="color:#ffffff;margin:5px 0 0;font-size:14px;">Real Estate Management</p>
      </td>
    </tr>
    <tr>
      <td style="padding:40px 30px;">
        <h2 style="color:#605c53;margin:0 0 20px;font-size:20px;">Payment Reminder</h2>
        <p style="color:#333;font-size:16px;line-height:1.6;">Dear <strong>{{.TenantName}}</strong>,</p>
        <p style="color:#333;font-size:16px;line-height:1.6;">This is a friendly reminder that your rent payment for <strong>{{.PropertyName}}</strong> is overdue.</p>
        <table width="100%" cellpadding="0" cellspacing="0" style="background-color:#f8f8f8;border:1px solid #eee;margin:20px 0;">
          <tr><td style="padding:20px;">
            <table width="100%" cellpadding="0" cellspacing="0">
              <tr>
                <td style="padding:10px 0;border-bottom:1px solid #eee;"><span style="color:#666;">Amount Due:</span></td>
                <td style="padding:10px 0;border-bottom:1px solid #eee;text-align:right;"><strong style="color:#e74c3c;font-size:18px;">{{.AmountDisplay}}</strong></td>
              </tr>
              <tr>
                <td style="padding:10px 0;border-bottom:1px solid #eee;"><span style="color:#666;">Due Date:</span></td>
                <td style="padding:10px 0;border-bottom:1px solid #eee;text-align:right;"><strong style="color:#333;">{{.DueDate}}</strong></td>
              </tr>
              <tr>
                <td style="padding:10px 0;"><span style="color:#666;">Days Overdue:</span></td>
                <td style="padding:10px 0;text-align:right;"><strong style="color:#e74c3c;">{{.DaysOverdue}} days</strong></td>
              </tr>
            </table>
          </td></tr>
        </table>
        <p style="color:#333;font-size:16px;line-height:1.6;">Please make the payment at your earliest convenience to avoid any late fees or penalties.</p>
        <p style="color:#333;font-size:16px;line-height:1.6;">If you have already made the payment, please disregard this email.</p>
        <p style="color:#333;font-size:16px;line-height:1.6;margin:30px 0 0;">Best regards,<br><strong>Telal Al-Bidaya Real Estate</strong></p>
      </td>
    </tr>
    <tr>
      <td style="background-color:#605c53;padding:20px 30px;text-align:center;">
        <p style="color:#ffffff;font-size:12px;margin:0;">Telal Al-Bidaya Real Estate<br>P.O. Box: 500 | Postal Code: 316 | Sultanate of Oman</p>
      </td>
    </tr>
  </table>
</body>
</html>
`))

// RenderReminder renders the late-payment reminder body.
func RenderReminder(params ReminderParams) (string, error) {
	var buf bytes.Buffer
	if err := reminderTmpl.Execute(&buf, params); err != nil {
		return "", fmt.Errorf("render reminder template: %w", err)
	}
	return buf.String(), nil
}
