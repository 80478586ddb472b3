package schemaname_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adk-labs/platform/utils/schemaname"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name     string
		tenantID string
		want     string
	}{
		{name: "plain slug", tenantID: "acme", want: "adk_tenant_acme"},
		{name: "mixed case preserved", tenantID: "AcmeCorp", want: "adk_tenant_AcmeCorp"},
		{name: "hyphen replaced", tenantID: "acme-corp", want: "adk_tenant_acme_corp"},
		{name: "dots and spaces replaced", tenantID: "acme.corp inc", want: "adk_tenant_acme_corp_inc"},
		{name: "sql injection attempt neutralized", tenantID: `x"; DROP SCHEMA public;--`, want: "adk_tenant_x___DROP_SCHEMA_public___"},
		{name: "empty input still yields prefix", tenantID: "", want: "adk_tenant_"},
		{name: "non ascii replaced", tenantID: "café", want: "adk_tenant_caf_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := schemaname.Derive(tt.tenantID, schemaname.DefaultPrefix)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveIsStable(t *testing.T) {
	first := schemaname.Derive("acme-corp", schemaname.DefaultPrefix)

	for range 10 {
		assert.Equal(t, first, schemaname.Derive("acme-corp", schemaname.DefaultPrefix))
	}
}

func TestDeriveOutputAlphabet(t *testing.T) {
	inputs := []string{"acme", "a b c", "üñï", "slug!@#$%^&*()", "", "tab\tnewline\n"}

	for _, in := range inputs {
		got := schemaname.Derive(in, schemaname.DefaultPrefix)

		require.NotEmpty(t, got)

		for _, r := range got {
			ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_'
			assert.Truef(t, ok, "unexpected character %q in %q", r, got)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Run("accepts derived names", func(t *testing.T) {
		assert.NoError(t, schemaname.Validate(schemaname.Derive("acme", schemaname.DefaultPrefix)))
	})

	t.Run("rejects too short names", func(t *testing.T) {
		assert.ErrorIs(t, schemaname.Validate("ab"), schemaname.ErrSchemaNameLength)
	})

	t.Run("rejects too long names", func(t *testing.T) {
		long := "adk_tenant_" + strings.Repeat("a", 60)
		assert.ErrorIs(t, schemaname.Validate(long), schemaname.ErrSchemaNameLength)
	})

	t.Run("rejects unsafe characters", func(t *testing.T) {
		assert.ErrorIs(t, schemaname.Validate(`adk";DROP`), schemaname.ErrUnsafeSchemaName)
	})
}
