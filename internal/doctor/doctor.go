// Package doctor validates dongerhook configuration without serving.
package doctor

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/mattjoyce/dongerhook/internal/config"
	"github.com/mattjoyce/dongerhook/internal/content"
	"github.com/mattjoyce/dongerhook/internal/tui"
)

// Result holds the outcome of a validation run.
type Result struct {
	Valid    bool    `json:"valid"`
	Errors   []Issue `json:"errors,omitempty"`
	Warnings []Issue `json:"warnings,omitempty"`

	// ContentEntries is the size of the content table when it loaded.
	ContentEntries int `json:"content_entries"`
}

// Issue describes a single validation error or warning.
type Issue struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
}

// Doctor validates a configuration that has been read but not validated.
type Doctor struct {
	cfg *config.Config
}

// New creates a Doctor from a config returned by config.Read.
func New(cfg *config.Config) *Doctor {
	return &Doctor{cfg: cfg}
}

// Validate runs all checks and returns a result.
func (d *Doctor) Validate() *Result {
	r := &Result{Valid: true}

	d.validateService(r)
	d.validateServer(r)
	d.validatePublicKey(r)
	d.validateContent(r)
	d.validateMetrics(r)
	d.checkIntegrity(r)
	d.warnMissingEnvVars(r)

	r.Valid = len(r.Errors) == 0
	return r
}

func (d *Doctor) addError(r *Result, category, field, msg string) {
	r.Errors = append(r.Errors, Issue{Category: category, Field: field, Message: msg})
}

func (d *Doctor) addWarning(r *Result, category, field, msg string) {
	r.Warnings = append(r.Warnings, Issue{Category: category, Field: field, Message: msg})
}

// check records err, if any, as an error against field.
func (d *Doctor) check(r *Result, category, field string, err error) {
	if err != nil {
		d.addError(r, category, field, err.Error())
	}
}

func (d *Doctor) validateService(r *Result) {
	d.check(r, "service", "service.log_level", d.cfg.ValidateLogLevel())

	if err := d.cfg.ValidateLogFormat(); err != nil {
		d.addError(r, "service", "service.log_format", err.Error())
	} else if strings.EqualFold(d.cfg.Service.LogFormat, "text") {
		d.addWarning(r, "service", "service.log_format",
			"text logs are meant for local runs; use json in production")
	}
}

func (d *Doctor) validateServer(r *Result) {
	d.check(r, "server", "server.listen", d.cfg.ValidateListen())
	d.check(r, "server", "server.path", d.cfg.ValidatePath())
	d.check(r, "server", "server.max_body_size", d.cfg.ValidateMaxBodySize())
	d.check(r, "server", "server.*_timeout", d.cfg.ValidateTimeouts())
}

func (d *Doctor) validatePublicKey(r *Result) {
	err := d.cfg.ValidatePublicKey()
	switch {
	case err == nil:
	case errors.Is(err, config.ErrMissingPublicKey):
		d.addError(r, "discord", "discord.public_key",
			fmt.Sprintf("no public key configured; set %s or discord.public_key", config.EnvPublicKey))
	default:
		d.addError(r, "discord", "discord.public_key", err.Error())
	}
}

func (d *Doctor) validateContent(r *Result) {
	table, err := content.Open(d.cfg.Content.Path)
	if err != nil {
		d.addError(r, "content", "content.path", err.Error())
		return
	}
	r.ContentEntries = table.Len()

	for _, name := range table.Categories() {
		if len(table.Entries(name)) == 1 {
			d.addWarning(r, "content", "content."+name,
				fmt.Sprintf("category %q has a single entry; every pick returns the same string", name))
		}
	}
}

func (d *Doctor) validateMetrics(r *Result) {
	if !d.cfg.Metrics.Enabled {
		if host, _, err := net.SplitHostPort(d.cfg.Server.Listen); err == nil && (host == "" || host == "0.0.0.0") {
			d.addWarning(r, "metrics", "metrics.enabled",
				"metrics disabled on a public listen address; outcome counters will not be scraped")
		}
		return
	}
	d.check(r, "metrics", "metrics.path", d.cfg.ValidateMetrics())
}

func (d *Doctor) checkIntegrity(r *Result) {
	res, err := config.VerifyIntegrity(d.cfg)
	if err != nil {
		d.addError(r, "integrity", config.ChecksumFile, err.Error())
		return
	}
	for _, msg := range res.Errors {
		d.addError(r, "integrity", config.ChecksumFile, msg)
	}
	for _, msg := range res.Warnings {
		d.addWarning(r, "integrity", config.ChecksumFile, msg)
	}
}

// warnMissingEnvVars warns about ${VAR} references left unresolved.
func (d *Doctor) warnMissingEnvVars(r *Result) {
	envVarRe := regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

	fields := []struct{ name, value string }{
		{"server.listen", d.cfg.Server.Listen},
		{"content.path", d.cfg.Content.Path},
	}
	for _, f := range fields {
		for _, m := range envVarRe.FindAllStringSubmatch(f.value, -1) {
			d.addWarning(r, "env_vars", f.name, fmt.Sprintf("environment variable %s is not set", m[1]))
		}
	}
}

// FormatHuman returns a human-readable validation report.
func FormatHuman(r *Result) string {
	theme := tui.NewDefaultTheme()
	var b strings.Builder

	switch {
	case r.Valid && len(r.Warnings) == 0:
		b.WriteString(theme.StatusOK.Render("Configuration valid."))
		b.WriteString("\n")
	case r.Valid:
		b.WriteString(theme.StatusOK.Render(fmt.Sprintf("Configuration valid (%d warning(s))", len(r.Warnings))))
		b.WriteString("\n")
	default:
		b.WriteString(theme.StatusFailed.Render(
			fmt.Sprintf("Configuration invalid (%d error(s), %d warning(s))", len(r.Errors), len(r.Warnings))))
		b.WriteString("\n")
	}

	for _, e := range r.Errors {
		writeIssue(&b, theme.StatusFailed.Render("ERROR"), e)
	}
	for _, w := range r.Warnings {
		writeIssue(&b, theme.StatusWarn.Render("WARN "), w)
	}

	if r.ContentEntries > 0 {
		fmt.Fprintf(&b, "%s\n", theme.Dim.Render(fmt.Sprintf("content table: %d entries", r.ContentEntries)))
	}

	return b.String()
}

func writeIssue(b *strings.Builder, label string, issue Issue) {
	if issue.Field != "" {
		fmt.Fprintf(b, "  %s [%s] %s: %s\n", label, issue.Category, issue.Field, issue.Message)
	} else {
		fmt.Fprintf(b, "  %s [%s] %s\n", label, issue.Category, issue.Message)
	}
}

// FormatJSON returns the result as indented JSON.
func FormatJSON(r *Result) (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
