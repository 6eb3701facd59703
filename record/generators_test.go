package record

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prestix-studio/cloudns-api/validation"
)

func baseArgs(recordType string, extra map[string]any) map[string]any {
	args := map[string]any{
		"domain_name": "example.com",
		"host":        "www",
		"ttl":         3600,
		"record":      "10.0.0.10",
		"record_type": recordType,
	}
	for key, value := range extra {
		args[key] = value
	}
	return args
}

func TestBuildParameters_ARecord(t *testing.T) {
	setTestEnv(t)

	params, err := buildParameters(baseArgs("A", nil))
	require.NoError(t, err)

	fields := params.Map()
	assert.Equal(t, "example.com", fields["domain-name"])
	assert.Equal(t, "www", fields["host"])
	assert.Equal(t, 3600, fields["ttl"])
	assert.Equal(t, "10.0.0.10", fields["record"])
	assert.Equal(t, "A", fields["record-type"])
	assert.Equal(t, "user42", fields["auth-id"])
}

func TestBuildParameters_UnknownRecordType(t *testing.T) {
	setTestEnv(t)

	_, err := buildParameters(baseArgs("SOA", nil))
	require.Error(t, err)

	var vErr *validation.Error
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "record-type", vErr.Field)
}

func TestBuildParameters_RecordValueValidatedByType(t *testing.T) {
	setTestEnv(t)

	tests := []struct {
		name       string
		recordType string
		record     any
		wantErr    bool
	}{
		{"A accepts IPv4", "A", "10.0.0.10", false},
		{"A rejects hostname", "A", "ns1.example.com", true},
		{"AAAA accepts IPv6", "AAAA", "2001:db8::1", false},
		{"AAAA rejects IPv4", "AAAA", "10.0.0.10", true},
		{"CNAME accepts hostname", "CNAME", "target.example.com", false},
		{"CNAME rejects spaces", "CNAME", "not a hostname", true},
		{"TXT accepts free text", "TXT", "v=spf1 include:_spf.example.com ~all", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildParameters(baseArgs(tt.recordType, map[string]any{"record": tt.record}))
			if tt.wantErr {
				require.Error(t, err)
				var vErrs validation.Errors
				require.True(t, errors.As(err, &vErrs))
				assert.Equal(t, "record", vErrs[0].Field)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestBuildParameters_MXDefaultsPriority(t *testing.T) {
	setTestEnv(t)

	params, err := buildParameters(baseArgs("MX", map[string]any{"record": "mail.example.com"}))
	require.NoError(t, err)
	assert.Equal(t, 10, params.Map()["priority"])
}

func TestBuildParameters_MXExplicitPriority(t *testing.T) {
	setTestEnv(t)

	params, err := buildParameters(baseArgs("MX", map[string]any{
		"record":   "mail.example.com",
		"priority": 20,
	}))
	require.NoError(t, err)
	assert.Equal(t, 20, params.Map()["priority"])
}

func TestBuildParameters_SRVBounds(t *testing.T) {
	setTestEnv(t)

	srvArgs := func(port any) map[string]any {
		return baseArgs("SRV", map[string]any{
			"host":     "_sip._tcp",
			"record":   "sip.example.com",
			"port":     port,
			"priority": 10,
			"weight":   0,
		})
	}

	_, err := buildParameters(srvArgs(5060))
	require.NoError(t, err)

	_, err = buildParameters(srvArgs(70000))
	require.Error(t, err)

	var vErrs validation.Errors
	require.True(t, errors.As(err, &vErrs))
	assert.Equal(t, "port", vErrs[0].Field)
	assert.Equal(t, "This field must be less than 65535.", vErrs[0].Message)
}

func TestBuildParameters_WebRedirect(t *testing.T) {
	setTestEnv(t)

	params, err := buildParameters(baseArgs("WR", map[string]any{
		"record":        "https://www.example.com",
		"redirect_type": 301,
	}))
	require.NoError(t, err)

	fields := params.Map()
	assert.Equal(t, 301, fields["redirect-type"])
	assert.Equal(t, 0, fields["frame"])
	assert.Nil(t, fields["frame-title"])
}

func TestBuildParameters_WebRedirectRejectsBadType(t *testing.T) {
	setTestEnv(t)

	_, err := buildParameters(baseArgs("WR", map[string]any{
		"record":        "https://www.example.com",
		"redirect_type": 307,
	}))
	require.Error(t, err)

	var vErrs validation.Errors
	require.True(t, errors.As(err, &vErrs))
	assert.Equal(t, "redirect-type", vErrs[0].Field)
}

func TestBuildParameters_PTRForcesApexHost(t *testing.T) {
	setTestEnv(t)

	params, err := buildParameters(baseArgs("PTR", map[string]any{
		"domain_name": "10.10.10.in-addr.arpa",
		"host":        "ignored",
		"record":      "server.example.com",
	}))
	require.NoError(t, err)
	assert.Equal(t, "@", params.Map()["host"])
}

func TestBuildParameters_NAPTRDropsRecordValue(t *testing.T) {
	setTestEnv(t)

	params, err := buildParameters(baseArgs("NAPTR", map[string]any{
		"order":   100,
		"pref":    10,
		"flag":    "S",
		"params":  "SIP+D2U",
		"regexp":  "!^.*$!sip:service@example.com!",
		"replace": "_sip._udp.example.com",
	}))
	require.NoError(t, err)

	fields := params.Map()
	assert.NotContains(t, fields, "record")
	assert.Equal(t, 100, fields["order"])
	assert.Equal(t, "_sip._udp.example.com", fields["replace"])
}

func TestBuildParameters_CAA(t *testing.T) {
	setTestEnv(t)

	params, err := buildParameters(baseArgs("CAA", map[string]any{
		"caa_flag":  0,
		"caa_type":  "issue",
		"caa_value": "letsencrypt.org",
	}))
	require.NoError(t, err)

	fields := params.Map()
	assert.NotContains(t, fields, "record")
	assert.Equal(t, 0, fields["caa_flag"])
	assert.Equal(t, "issue", fields["caa_type"])
	assert.Equal(t, "letsencrypt.org", fields["caa_value"])
}

func TestBuildParameters_CAARejectsBadFlag(t *testing.T) {
	setTestEnv(t)

	_, err := buildParameters(baseArgs("CAA", map[string]any{
		"caa_flag":  2,
		"caa_type":  "issue",
		"caa_value": "letsencrypt.org",
	}))
	require.Error(t, err)

	var vErrs validation.Errors
	require.True(t, errors.As(err, &vErrs))
	assert.Equal(t, "caa_flag", vErrs[0].Field)
}

func TestBuildParameters_TLSA(t *testing.T) {
	setTestEnv(t)

	params, err := buildParameters(baseArgs("TLSA", map[string]any{
		"host":          "_443._tcp",
		"record":        "d2abde240d7cd3ee6b4b28c54df034b9",
		"tlsa_usage":    3,
		"tlsa_selector": 1,
	}))
	require.NoError(t, err)

	fields := params.Map()
	assert.Equal(t, 3, fields["tlsa_usage"])
	assert.Equal(t, 1, fields["tlsa_selector"])
	assert.Equal(t, 0, fields["tlsa_matching_type"])
}

func TestBuildParameters_TLSARejectsNonHexRecord(t *testing.T) {
	setTestEnv(t)

	_, err := buildParameters(baseArgs("TLSA", map[string]any{
		"host":   "_443._tcp",
		"record": "not hex at all",
	}))
	require.Error(t, err)

	var vErrs validation.Errors
	require.True(t, errors.As(err, &vErrs))
	assert.Equal(t, "record", vErrs[0].Field)
	assert.Equal(t, "This field must be a hexadecimal string.", vErrs[0].Message)
}

func TestBuildParameters_SSHFP(t *testing.T) {
	setTestEnv(t)

	params, err := buildParameters(baseArgs("SSHFP", map[string]any{
		"record":    "a1b2c3d4e5",
		"algorithm": "RSA",
		"fptype":    "SHA-256",
	}))
	require.NoError(t, err)

	fields := params.Map()
	assert.Equal(t, "RSA", fields["algorithm"])
	assert.Equal(t, "SHA-256", fields["fptype"])
}

func TestBuildParameters_AppendsRecordID(t *testing.T) {
	setTestEnv(t)

	params, err := buildParameters(baseArgs("A", map[string]any{"record_id": 42}))
	require.NoError(t, err)
	assert.Equal(t, 42, params.Map()["record-id"])
}

func TestBuildParameters_GeoDNSLocation(t *testing.T) {
	setTestEnv(t)

	params, err := buildParameters(baseArgs("A", map[string]any{"geodns_location": 7}))
	require.NoError(t, err)
	assert.Equal(t, 7, params.Map()["geodns-location"])
}

func TestBuildParameters_CollectsAllFailures(t *testing.T) {
	setTestEnv(t)

	_, err := buildParameters(baseArgs("A", map[string]any{
		"ttl":    17,
		"record": "not-an-ip",
	}))
	require.Error(t, err)

	var vErrs validation.Errors
	require.True(t, errors.As(err, &vErrs))
	require.Len(t, vErrs, 2)
	assert.Equal(t, "ttl", vErrs[0].Field)
	assert.Equal(t, "record", vErrs[1].Field)
}
