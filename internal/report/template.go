package report

const reportHTMLTemplate = `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.5; color: #333;">
    <h2 style="color: #2E86C1;">Hello {{.RecipientName}},</h2>
    <p>I've completed the AI-powered analysis of your stock portfolio as of {{.Timestamp}}. Here are the details:</p>

    <h3 style="color: #2E86C1;">Current Stock Data</h3>
    <table style="border-collapse: collapse; width: 100%;">
        <tr style="background-color: #2E86C1; color: white; text-align: center;">
            <th style="padding: 8px; border: 1px solid #ddd;">Stock</th>
            <th style="padding: 8px; border: 1px solid #ddd;">Price (USD)</th>
            <th style="padding: 8px; border: 1px solid #ddd;">Volume</th>
        </tr>
        {{range .StockRows}}
        <tr style="text-align: center;">
            <td style="padding: 8px; border: 1px solid #ddd;">{{.Symbol}}</td>
            <td style="padding: 8px; border: 1px solid #ddd;">{{.Price}}</td>
            <td style="padding: 8px; border: 1px solid #ddd;">{{.Volume}}</td>
        </tr>
        {{end}}
    </table>

    <h3 style="color: #2E86C1;">Market Context</h3>
    <table style="border-collapse: collapse; width: 100%;">
        <tr style="background-color: #2E86C1; color: white; text-align: center;">
            <th style="padding: 8px; border: 1px solid #ddd;">Metric</th>
            <th style="padding: 8px; border: 1px solid #ddd;">Value</th>
        </tr>
        {{range .MarketRows}}
        <tr style="text-align: center;">
            <td style="padding: 8px; border: 1px solid #ddd;">{{.Metric}}</td>
            <td style="padding: 8px; border: 1px solid #ddd;">{{.Value}}</td>
        </tr>
        {{end}}
    </table>

    <h3 style="color: #2E86C1;">Key AI Findings</h3>
    <div style="background-color: #F2F3F4; padding: 10px; border-radius: 5px;">
        {{.Analysis}}
    </div>

    <h3 style="color: #E74C3C;">Disclaimers</h3>
    <ul>
        <li>This analysis is for educational purposes only and should not be considered financial advice.</li>
        <li>Consult a qualified financial advisor before making any investment decisions.</li>
    </ul>

    <p>Token usage for this report: {{.TokenCount}}</p>
    <p>Best regards,<br>Stock Analysis System</p>
</body>
</html>`

const errorHTMLTemplate = `<html>
<body style="font-family: Arial, sans-serif; line-height: 1.5;">
    <p>Dear {{.RecipientName}},</p>
    <p>I attempted to generate your stock analysis report, but encountered an error:</p>
    <p><b>Error:</b> {{.ErrorKind}}<br>
       <b>Details:</b> {{.Message}}</p>
    <p>Please check your API configuration and try again.</p>
    <p>Best regards,<br>Stock Analysis System</p>
</body>
</html>`
