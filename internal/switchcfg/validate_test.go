package switchcfg

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSettings() Settings {
	s := New("t1", "main")
	s.Host = "pbx.example.com"
	s.Login = "click2dial"
	s.Secret = "s3cret"
	s.DialContext = "from-internal"
	s.CountryPrefix = "33"
	return s
}

func TestNew_AppliesDefaults(t *testing.T) {
	s := New("t1", "main")
	assert.Equal(t, 5038, s.Port)
	assert.Equal(t, "0", s.OutPrefix)
	assert.Equal(t, "0", s.NationalPrefix)
	assert.Equal(t, "00", s.InternationalPrefix)
	assert.Equal(t, 1, s.ExtensionPriority)
	assert.Equal(t, 5, s.AnswerTimeoutSeconds)
}

func TestValidate_AcceptsValidSettings(t *testing.T) {
	require.NoError(t, Validate(validSettings()))

	s := validSettings()
	s.OutPrefix = ""
	s.NationalPrefix = ""
	require.NoError(t, Validate(s), "optional prefixes may be empty")
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{"non digit country prefix", func(s *Settings) { s.CountryPrefix = "+33" }, "country_prefix"},
		{"empty country prefix", func(s *Settings) { s.CountryPrefix = "" }, "country_prefix"},
		{"empty international prefix", func(s *Settings) { s.InternationalPrefix = "" }, "international_prefix"},
		{"non digit out prefix", func(s *Settings) { s.OutPrefix = "9a" }, "out_prefix"},
		{"non digit national prefix", func(s *Settings) { s.NationalPrefix = " 0" }, "national_prefix"},
		{"port zero", func(s *Settings) { s.Port = 0 }, "port"},
		{"port too large", func(s *Settings) { s.Port = 70000 }, "port"},
		{"timeout zero", func(s *Settings) { s.AnswerTimeoutSeconds = 0 }, "answer_timeout_seconds"},
		{"timeout too large", func(s *Settings) { s.AnswerTimeoutSeconds = 121 }, "answer_timeout_seconds"},
		{"priority zero", func(s *Settings) { s.ExtensionPriority = 0 }, "extension_priority"},
		{"missing host", func(s *Settings) { s.Host = "" }, "host"},
		{"missing secret", func(s *Settings) { s.Secret = "" }, "secret"},
		{"header injection", func(s *Settings) { s.AlertHeader = "ring\r\nAction: hangup" }, "alert_header"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := validSettings()
			tc.mutate(&s)
			err := Validate(s)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalid))
			assert.Contains(t, err.Error(), tc.field)
		})
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	s := validSettings()
	s.Port = 0
	s.CountryPrefix = "x"
	err := Validate(s)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "port") && strings.Contains(err.Error(), "country_prefix"), err.Error())
}

func TestSettings_ProjectsRulesAndEndpoint(t *testing.T) {
	s := validSettings()
	s.AlertHeader = "info=silent"

	rules := s.PrefixRules()
	assert.Equal(t, "33", rules.CountryPrefix)
	assert.True(t, rules.NationalFormatAllowed)

	ep := s.Endpoint()
	assert.Equal(t, "pbx.example.com", ep.Host)
	assert.Equal(t, "s3cret", ep.Secret)
	assert.Equal(t, "info=silent", ep.AlertHeader)

	assert.Empty(t, s.Redacted().Secret)
	assert.Equal(t, "s3cret", s.Secret, "Redacted must not mutate the receiver")
}
