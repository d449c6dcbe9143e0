package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/depsub/internal/core/domain"
)

func TestNewPackageIdentity(t *testing.T) {
	tests := []struct {
		name      string
		purlType  string
		namespace string
		pkgName   string
		version   string
		want      string
	}{
		{
			name:      "Scoped npm package",
			purlType:  "npm",
			namespace: "@github",
			pkgName:   "dependency-submission-toolkit",
			version:   "0.1.2",
			want:      "pkg:npm/%40github/dependency-submission-toolkit@0.1.2",
		},
		{
			name:     "No namespace",
			purlType: "npm",
			pkgName:  "left-pad",
			version:  "1.3.0",
			want:     "pkg:npm/left-pad@1.3.0",
		},
		{
			name:     "No version",
			purlType: "npm",
			pkgName:  "left-pad",
			want:     "pkg:npm/left-pad",
		},
		{
			name:      "Go module with path namespace",
			purlType:  "golang",
			namespace: "github.com/spf13",
			pkgName:   "cobra",
			version:   "v1.10.2",
			want:      "pkg:golang/github.com/spf13/cobra@v1.10.2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := domain.NewPackageIdentity(tt.purlType, tt.namespace, tt.pkgName, tt.version)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.String())
			assert.Equal(t, tt.namespace, id.Namespace())
			assert.Equal(t, tt.pkgName, id.Name())
			assert.Equal(t, tt.version, id.Version())
		})
	}
}

func TestNewPackageIdentity_Invalid(t *testing.T) {
	_, err := domain.NewPackageIdentity("", "", "name", "1.0.0")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidPackageURL.Error())

	_, err = domain.NewPackageIdentity("npm", "", "", "1.0.0")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInvalidPackageURL.Error())
}

func TestParsePackageIdentity_RoundTrip(t *testing.T) {
	inputs := []string{
		"pkg:npm/%40github/dependency-submission-toolkit@0.1.2",
		"pkg:npm/left-pad@1.3.0",
		"pkg:golang/github.com/spf13/cobra@v1.10.2",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			id, err := domain.ParsePackageIdentity(input)
			require.NoError(t, err)
			assert.Equal(t, input, id.String())

			again, err := domain.ParsePackageIdentity(id.String())
			require.NoError(t, err)
			assert.True(t, id.Equal(again))
		})
	}
}

func TestParsePackageIdentity_Decoded(t *testing.T) {
	id := domain.MustParsePackageIdentity("pkg:npm/%40github/dependency-submission-toolkit@0.1.2")
	assert.Equal(t, "npm", id.Type())
	assert.Equal(t, "@github", id.Namespace())
	assert.Equal(t, "dependency-submission-toolkit", id.Name())
	assert.Equal(t, "0.1.2", id.Version())
}

func TestParsePackageIdentity_Invalid(t *testing.T) {
	for _, input := range []string{"", "npm/left-pad@1.0.0", "not a purl"} {
		_, err := domain.ParsePackageIdentity(input)
		require.Error(t, err, input)
		assert.ErrorContains(t, err, domain.ErrInvalidPackageURL.Error())
	}
}

func TestPackageIdentity_ConstructorsAgree(t *testing.T) {
	built, err := domain.NewPackageIdentity("npm", "@actions", "core", "1.6.0")
	require.NoError(t, err)
	parsed := domain.MustParsePackageIdentity(built.String())
	assert.True(t, built.Equal(parsed))
}

func TestPackageIdentity_Text(t *testing.T) {
	id := domain.MustParsePackageIdentity("pkg:npm/%40actions/core@1.6.0")

	data, err := json.Marshal(map[string]domain.PackageIdentity{"id": id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"pkg:npm/%40actions/core@1.6.0"}`, string(data))

	var decoded map[string]domain.PackageIdentity
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, id.Equal(decoded["id"]))

	var zero domain.PackageIdentity
	assert.True(t, zero.IsZero())
	assert.False(t, id.IsZero())
}
