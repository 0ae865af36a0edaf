package patterns

import "github.com/deepbrainspace/guardy/internal/model"

// BuiltinDefinitions returns the seed Pattern Library shipped with Guardy.
// Detectors with a vendor-unique literal prefix (sk_live_, ghp_, AKIA, ...)
// are VendorSpecific and bypass entropy validation. Detectors matching a
// generic "key = value" shape are Generic and must pass entropy validation.
func BuiltinDefinitions() []Definition {
	return []Definition{
		{
			ID:          "stripe_live_key",
			DisplayName: "Stripe Live Secret Key",
			Description: "A Stripe live-mode secret key, usable to move real money through the Stripe API.",
			Severity:    model.SeverityCritical,
			Class:       model.ClassVendorSpecific,
			Regex:       `\b(sk_live_[0-9a-zA-Z]{24,247})\b`,
			Keywords:    []string{"sk_live_"},
		},
		{
			ID:          "stripe_restricted_key",
			DisplayName: "Stripe Restricted Key",
			Description: "A Stripe restricted-permission live API key.",
			Severity:    model.SeverityHigh,
			Class:       model.ClassVendorSpecific,
			Regex:       `\b(rk_live_[0-9a-zA-Z]{24,247})\b`,
			Keywords:    []string{"rk_live_"},
		},
		{
			ID:          "github_pat",
			DisplayName: "GitHub Personal Access Token",
			Description: "A GitHub token (classic PAT, fine-grained PAT, OAuth, app, or refresh token).",
			Severity:    model.SeverityHigh,
			Class:       model.ClassVendorSpecific,
			Regex:       `\b((?:ghp|gho|ghu|ghs|ghr|github_pat)_[a-zA-Z0-9_]{36,255})\b`,
			Keywords:    []string{"ghp_", "gho_", "ghu_", "ghs_", "ghr_", "github_pat_"},
		},
		{
			ID:              "github_oauth_legacy",
			DisplayName:     "GitHub Legacy OAuth Token",
			Description:     "A pre-2021 GitHub OAuth/personal access token (40 hex chars, no vendor prefix).",
			Severity:        model.SeverityHigh,
			Class:           model.ClassGeneric,
			Regex:           `(?i)(?:github|gh|pat|token)[^.].{0,40}[ =:'"]+(?P<secret>[a-f0-9]{40})\b`,
			Keywords:        []string{"github", "gh", "pat", "token"},
			CaseInsensitive: true,
		},
		{
			ID:          "aws_access_key_id",
			DisplayName: "AWS Access Key ID",
			Description: "An AWS access key ID, the public half of an AWS credential pair.",
			Severity:    model.SeverityCritical,
			Class:       model.ClassVendorSpecific,
			Regex:       `\b((?:AKIA|ABIA|ACCA)[A-Z0-9]{16})\b`,
			Keywords:    []string{"AKIA", "ABIA", "ACCA"},
		},
		{
			ID:          "jwt",
			DisplayName: "JSON Web Token",
			Description: "A JSON Web Token; may embed authorization claims or be used for session authentication.",
			Severity:    model.SeverityHigh,
			Class:       model.ClassGeneric,
			Regex:       `\b(eyJ[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{3,}\.[A-Za-z0-9_-]{8,})\b`,
			Keywords:    []string{"eyJ"},
		},
		{
			ID:          "anthropic_api_key",
			DisplayName: "Anthropic API Key",
			Description: "An Anthropic API key for the Claude API.",
			Severity:    model.SeverityCritical,
			Class:       model.ClassVendorSpecific,
			Regex:       `\b(sk-ant-api03-[\w-]{93}AA)\b`,
			Keywords:    []string{"sk-ant-api03"},
		},
		{
			ID:          "openai_api_key",
			DisplayName: "OpenAI API Key",
			Description: "An OpenAI API key.",
			Severity:    model.SeverityCritical,
			Class:       model.ClassVendorSpecific,
			Regex:       `\b(sk-[a-zA-Z0-9]{20}T3BlbkFJ[a-zA-Z0-9]{20})\b`,
			Keywords:    []string{"sk-", "T3BlbkFJ"},
		},
		{
			ID:          "slack_token",
			DisplayName: "Slack Token",
			Description: "A Slack bot, user, app, or legacy token.",
			Severity:    model.SeverityHigh,
			Class:       model.ClassVendorSpecific,
			Regex:       `\b(xox[baprs]-[0-9a-zA-Z]{10,48})\b`,
			Keywords:    []string{"xoxb-", "xoxa-", "xoxp-", "xoxr-", "xoxs-"},
		},
		{
			ID:          "slack_webhook",
			DisplayName: "Slack Incoming Webhook URL",
			Description: "A Slack incoming webhook URL, usable to post messages into a workspace.",
			Severity:    model.SeverityMedium,
			Class:       model.ClassVendorSpecific,
			Regex:       `\b(https://hooks\.slack\.com/services/T[a-zA-Z0-9_]{8,10}/B[a-zA-Z0-9_]{8,10}/[a-zA-Z0-9_]{23,24})\b`,
			Keywords:    []string{"hooks.slack.com/services/"},
		},
		{
			ID:              "npm_token",
			DisplayName:     "npm Access Token",
			Description:     "An npm registry access token (UUID-shaped, prefixed by an NpmToken. assignment or the word npm).",
			Severity:        model.SeverityHigh,
			Class:           model.ClassGeneric,
			Regex:           `(?:NpmToken\.|(?i:npm)(?:.|[\n\r]){0,40}?)\b(?P<secret>(?i:[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}))\b`,
			Keywords:        []string{"npm"},
			CaseInsensitive: true,
		},
		{
			ID:          "mailgun_api_key",
			DisplayName: "Mailgun API Key",
			Description: "A Mailgun API key of the key-xxxx shape.",
			Severity:    model.SeverityHigh,
			Class:       model.ClassVendorSpecific,
			Regex:       `\b(key-[a-z0-9]{32})\b`,
			Keywords:    []string{"mailgun", "key-"},
		},
		{
			ID:              "algolia_admin_key",
			DisplayName:     "Algolia Admin API Key",
			Description:     "An Algolia admin API key, granting full read/write access to an application's indices.",
			Severity:        model.SeverityHigh,
			Class:           model.ClassGeneric,
			Regex:           `(?i:algolia)(?:.|[\n\r]){0,40}?\b(?P<secret>[a-zA-Z0-9]{32})\b`,
			Keywords:        []string{"algolia"},
			CaseInsensitive: true,
		},
		{
			ID:              "discord_bot_token",
			DisplayName:     "Discord Bot Token",
			Description:     "A Discord bot token.",
			Severity:        model.SeverityHigh,
			Class:           model.ClassGeneric,
			Regex:           `(?i:discord)(?:.|[\n\r]){0,40}?\b(?P<secret>[A-Za-z0-9_-]{24}\.[A-Za-z0-9_-]{6}\.[A-Za-z0-9_-]{27})\b`,
			Keywords:        []string{"discord"},
			CaseInsensitive: true,
		},
		{
			ID:          "mailchimp_api_key",
			DisplayName: "Mailchimp API Key",
			Description: "A Mailchimp API key, identifiable by its -usNN datacenter suffix.",
			Severity:    model.SeverityMedium,
			Class:       model.ClassVendorSpecific,
			Regex:       `\b([0-9a-f]{32}-us[0-9]{1,2})\b`,
			Keywords:    []string{"-us1", "-us2", "-us3", "-us4", "-us5", "-us6"},
		},
		{
			ID:              "private_key_block",
			DisplayName:     "Private Key",
			Description:     "The header line of a PEM-encoded private key block (RSA, EC, OpenSSH, PGP, or generic). Matched on the header alone, not the full block, so matched_text never spans a line terminator.",
			Severity:        model.SeverityCritical,
			Class:           model.ClassVendorSpecific,
			Regex:           `(?i)-----BEGIN[ A-Z0-9_-]*PRIVATE KEY-----`,
			Keywords:        []string{"private key"},
			CaseInsensitive: true,
		},
		{
			ID:              "generic_api_key_assignment",
			DisplayName:     "Generic API Key",
			Description:     "A variable or constant whose name contains \"key\" assigned a quoted string literal; entropy-validated since key-shaped identifiers are frequently non-secret constants.",
			Severity:        model.SeverityMedium,
			Class:           model.ClassGeneric,
			Regex:           `(?i)\b\w*key\w*\b\s*(?::\s*\S+\s*)?=\s*['"](?P<secret>[^'"]{8,64})['"]`,
			Keywords:        []string{"key"},
			CaseInsensitive: true,
		},
		{
			ID:              "generic_password_assignment",
			DisplayName:     "Generic Password",
			Description:     "A variable named like a password or secret assigned a high-entropy string literal.",
			Severity:        model.SeverityMedium,
			Class:           model.ClassGeneric,
			Regex:           `(?i)(?:password|passwd|pwd|secret)\s*[:=]\s*['"](?P<secret>[^'"\s]{8,64})['"]`,
			Keywords:        []string{"password", "passwd", "pwd", "secret"},
			CaseInsensitive: true,
		},
		{
			ID:          "basic_auth_url",
			DisplayName: "URL with Embedded Credentials",
			Description: "A URL containing a username:password pair in its authority component.",
			Severity:    model.SeverityHigh,
			Class:       model.ClassGeneric,
			Regex:       `\b[a-zA-Z][a-zA-Z0-9+.-]*://[^/\s:@]+:(?P<secret>[^/\s:@]{4,64})@[^/\s]+`,
			Keywords:    nil,
		},
		{
			ID:          "google_api_key",
			DisplayName: "Google API Key",
			Description: "A Google Cloud / Maps / Firebase API key.",
			Severity:    model.SeverityHigh,
			Class:       model.ClassVendorSpecific,
			Regex:       `\b(AIza[0-9A-Za-z_-]{35})\b`,
			Keywords:    []string{"AIza"},
		},
		{
			ID:          "twilio_api_key",
			DisplayName: "Twilio API Key",
			Description: "A Twilio API key (SK-prefixed) or account SID (AC-prefixed).",
			Severity:    model.SeverityHigh,
			Class:       model.ClassVendorSpecific,
			Regex:       `\b((?:SK|AC)[0-9a-fA-F]{32})\b`,
			Keywords:    []string{"SK", "AC"},
		},
		{
			ID:              "heroku_api_key",
			DisplayName:     "Heroku API Key",
			Description:     "A Heroku platform API key, UUID-shaped and introduced near the word heroku.",
			Severity:        model.SeverityMedium,
			Class:           model.ClassGeneric,
			Regex:           `(?i:heroku)(?:.|[\n\r]){0,40}?\b(?P<secret>[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12})\b`,
			Keywords:        []string{"heroku"},
			CaseInsensitive: true,
		},
	}
}
