package email

// orderConfirmationContentTemplate is the content section for customer order emails
const orderConfirmationContentTemplate = `
<div style="text-align: center; margin-bottom: 28px;">
    <h1 style="color: #4a7c59; margin: 0; font-size: 26px;">Thank you for your order!</h1>
    <p style="font-size: 16px; color: #666; margin: 10px 0;">Hi {{.CustomerName}}, your payment was received and your order is confirmed.</p>
</div>

<div style="background-color: #f4f7f5; padding: 18px 20px; border-radius: 8px; border-left: 4px solid #4a7c59; margin-bottom: 24px;">
    <p style="margin: 4px 0;"><strong>Order Number:</strong> #{{.Reference}}</p>
    <p style="margin: 4px 0;"><strong>Order Date:</strong> {{.OrderDate}}</p>
    {{if .PaymentID}}<p style="margin: 4px 0;"><strong>Payment ID:</strong> {{.PaymentID}}</p>{{end}}
</div>

<table style="width: 100%; border-collapse: collapse; margin: 16px 0;">
    <thead>
        <tr style="background-color: #4a7c59;">
            <th style="color: white; padding: 10px; text-align: left;">Product</th>
            <th style="color: white; padding: 10px; text-align: center;">Qty</th>
            <th style="color: white; padding: 10px; text-align: right;">Price</th>
            <th style="color: white; padding: 10px; text-align: right;">Total</th>
        </tr>
    </thead>
    <tbody>
        {{range .Items}}
        <tr style="border-bottom: 1px solid #eee;">
            <td style="padding: 10px;">{{.Name}}</td>
            <td style="padding: 10px; text-align: center;">{{.Quantity}}</td>
            <td style="padding: 10px; text-align: right;">{{FormatEUR .PriceCents}}</td>
            <td style="padding: 10px; text-align: right;">{{FormatEUR .LineTotalCents}}</td>
        </tr>
        {{else}}
        <tr><td colspan="4" style="padding: 10px; color: #888;">Item details are available in your account.</td></tr>
        {{end}}
    </tbody>
</table>

<p style="text-align: right; font-size: 18px; font-weight: bold; color: #4a7c59; border-top: 2px solid #4a7c59; padding-top: 12px;">
    Total: {{FormatEUR .TotalCents}}
</p>

{{if not .ShippingAddress.Empty}}
<div style="background-color: #f4f7f5; padding: 18px 20px; border-radius: 8px; margin-top: 20px;">
    <h3 style="margin-top: 0; font-size: 15px;">Shipping Address</h3>
    <p style="margin: 4px 0;">{{.ShippingAddress.FullName}}<br>
    {{.ShippingAddress.Address}}<br>
    {{.ShippingAddress.ZipCode}} {{.ShippingAddress.City}}<br>
    {{.ShippingAddress.Country}}</p>
</div>
{{end}}

{{if .ReceiptURL}}
<p style="text-align: center; margin-top: 28px;">
    <a class="button" href="{{.ReceiptURL}}">View Receipt</a>
</p>
{{end}}
`

const orderStatusContentTemplate = `
<div style="text-align: center; margin-bottom: 24px;">
    <h1 style="color: {{.Color}}; margin: 0; font-size: 24px;">Order Status Update</h1>
    <p style="font-size: 16px; color: #555;">Hi {{.CustomerName}}, your order #{{.Reference}} {{.Message}}.</p>
</div>

<div style="background-color: #f4f7f5; padding: 18px 20px; border-radius: 8px; border-left: 4px solid {{.Color}};">
    <p style="margin: 4px 0;"><strong>Order Number:</strong> #{{.Reference}}</p>
    <p style="margin: 4px 0;"><strong>New Status:</strong> {{.Status}}</p>
    <p style="margin: 4px 0;"><strong>Order Total:</strong> {{FormatEUR .TotalCents}}</p>
</div>

{{if eq .Status "delivered"}}
<p style="margin-top: 20px;">We hope you love your new skincare. Reviews help other customers find the right products for their skin.</p>
{{end}}
`

const verificationContentTemplate = `
<h1 style="color: #4a7c59; font-size: 24px;">Verify your email</h1>
<p>Hi {{.Name}},</p>
<p>Thanks for creating a Roi Beauty account. Please confirm your email address to finish setting it up.</p>
<p style="text-align: center; margin: 30px 0;">
    <a class="button" href="{{.Link}}">Verify Email</a>
</p>
<p style="font-size: 13px; color: #777;">This link expires in 24 hours. If you did not create an account, you can ignore this email.</p>
`

const passwordResetContentTemplate = `
<h1 style="color: #4a7c59; font-size: 24px;">Reset your password</h1>
<p>Hi {{.Name}},</p>
<p>We received a request to reset the password for your Roi Beauty account.</p>
<p style="text-align: center; margin: 30px 0;">
    <a class="button" href="{{.Link}}">Reset Password</a>
</p>
<p style="font-size: 13px; color: #777;">This link expires in 1 hour. If you did not request a reset, no changes have been made to your account.</p>
`

const welcomeContentTemplate = `
<h1 style="color: #4a7c59; font-size: 24px;">Welcome to RoiBeauty, {{.Name}}!</h1>
<p>Your account is ready. Discover cleansers, serums, moisturizers and more, chosen for every skin type.</p>
<ul style="padding-left: 18px; color: #555;">
    <li>Track your orders from your account</li>
    <li>Save your shipping details for faster checkout</li>
    <li>Share reviews on the products you love</li>
</ul>
<p style="text-align: center; margin: 30px 0;">
    <a class="button" href="{{.Link}}">Start Shopping</a>
</p>
`

const adminOrderContentTemplate = `
<h1 style="color: #4a7c59; font-size: 24px;">New Order Received</h1>

<div style="background-color: #f4f7f5; padding: 18px 20px; border-radius: 8px; border-left: 4px solid #4a7c59; margin-bottom: 20px;">
    <p style="margin: 4px 0;"><strong>Order Number:</strong> #{{.Reference}}</p>
    <p style="margin: 4px 0;"><strong>Order ID:</strong> {{.OrderID}}</p>
    <p style="margin: 4px 0;"><strong>Customer:</strong> {{.CustomerName}} &lt;{{.CustomerEmail}}&gt;</p>
    <p style="margin: 4px 0;"><strong>Date:</strong> {{.OrderDate}}</p>
    {{if .PaymentID}}<p style="margin: 4px 0;"><strong>Stripe Payment:</strong> {{.PaymentID}}</p>{{end}}
</div>

<table style="width: 100%; border-collapse: collapse;">
    {{range .Items}}
    <tr style="border-bottom: 1px solid #eee;">
        <td style="padding: 8px;">{{.Name}}</td>
        <td style="padding: 8px; text-align: center;">x{{.Quantity}}</td>
        <td style="padding: 8px; text-align: right;">{{FormatEUR .LineTotalCents}}</td>
    </tr>
    {{end}}
</table>

<p style="text-align: right; font-size: 18px; font-weight: bold;">Total: {{FormatEUR .TotalCents}}</p>

{{if not .ShippingAddress.Empty}}
<h3 style="font-size: 15px;">Ship to</h3>
<p>{{.ShippingAddress.FullName}}<br>
{{.ShippingAddress.Address}}<br>
{{.ShippingAddress.ZipCode}} {{.ShippingAddress.City}}, {{.ShippingAddress.Country}}<br>
{{.ShippingAddress.Phone}}</p>
{{end}}
`

const contactConfirmationContentTemplate = `
<h1 style="color: #4a7c59; font-size: 24px;">We received your message</h1>
<p>Hi {{.Name}},</p>
<p>Thank you for contacting Roi Beauty Essence. Our team will get back to you soon.</p>
<div style="background-color: #f4f7f5; padding: 16px 20px; border-radius: 8px; color: #555; white-space: pre-wrap;">{{.Message}}</div>
`

const contactAdminContentTemplate = `
<h1 style="color: #4a7c59; font-size: 24px;">New Contact Form Submission</h1>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
{{if .SubmittedAt}}<p><strong>Received:</strong> {{.SubmittedAt}}</p>{{end}}
{{if .IPAddress}}<p><strong>IP:</strong> {{.IPAddress}}</p>{{end}}
<div style="background-color: #f4f7f5; padding: 16px 20px; border-radius: 8px; white-space: pre-wrap;">{{.Message}}</div>
`
