package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Validate(Default()))
}

func TestParse_OverridesOnlyGivenKeys(t *testing.T) {
	cfg, err := Parse([]byte("range_days: 14\nlunar: false\n"))
	require.NoError(t, err)

	assert.Equal(t, Config{
		Database:  "tianshu.db",
		Timezone:  "Local",
		RangeDays: 14,
		Lunar:     false,
	}, cfg)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Parse([]byte("# nothing here\n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("range_day: 7\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "range_day")
	assert.False(t, IsValidationError(err))
}

func TestParse_WrongType(t *testing.T) {
	_, err := Parse([]byte("range_days: many\n"))
	assert.Error(t, err)
}

func TestParse_SchemaViolations(t *testing.T) {
	cases := map[string]string{
		"range_days too small": "range_days: 0\n",
		"range_days too large": "range_days: 5000\n",
		"empty database":       "database: \"\"\n",
		"empty timezone":       "timezone: \"\"\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.True(t, IsValidationError(err), "%v", err)
		})
	}
}

func TestParse_SchemaViolationNamesField(t *testing.T) {
	_, err := Parse([]byte("range_days: -3\n"))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "range_days", ve.Field)
}

func TestParse_BadTimezone(t *testing.T) {
	_, err := Parse([]byte("timezone: Mars/Olympus_Mons\n"))
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "timezone", ve.Field)
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(path, true)
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tianshu.yaml")
	doc := "database: /var/lib/tianshu/data.db\ntimezone: UTC\nrange_days: 60\nlunar: true\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/tianshu/data.db", cfg.Database)
	assert.Equal(t, 60, cfg.RangeDays)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
