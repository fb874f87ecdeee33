package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/tianshu/internal/fortune"
	"github.com/roach88/tianshu/internal/store"
)

func TestCycle_JSON(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("--format", "json", "cycle", "2025-12-20")
	require.NoError(t, err)

	status, result, _ := decode[CycleResult](t, out)
	assert.Equal(t, "ok", status)
	assert.Equal(t, CycleResult{
		Date:        "2025-12-20",
		Code:        "癸亥",
		Label:       "癸亥日",
		Stem:        "gui",
		Branch:      "hai",
		StemIndex:   9,
		BranchIndex: 11,
		CycleIndex:  59,
	}, result)
}

func TestCycle_TextDefaultsToToday(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("cycle")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-21  甲子日  (jia-zi, #1)\n", out)
}

func TestCycle_InvalidDate(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("--format", "json", "cycle", "12/20/2025")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, fortune.IsInvalidInput(err))

	status, _, cliErr := decode[CycleResult](t, out)
	assert.Equal(t, "error", status)
	require.NotNil(t, cliErr)
	assert.Equal(t, ErrCodeInvalidInput, cliErr.Code)
}

func TestDay_JSON(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("--format", "json", "day", "2025-12-20")
	require.NoError(t, err)

	_, day, _ := decode[DayResult](t, out)
	assert.Equal(t, "癸亥", day.Code)
	assert.Equal(t, "遷移宮", day.Palace)
	assert.Equal(t, 25, day.Score)
	assert.Equal(t, "flow", day.Band)
	assert.Equal(t, "favorable", day.Color)
	assert.Equal(t, "soaring", day.Tone)
	assert.Equal(t, "武曲 · 破軍 · 天魁", day.Stars)
	assert.Equal(t, "破軍祿", day.Status)
	assert.Equal(t, fortune.LunarPlaceholder, day.Lunar, "lunar labels are disabled in the test config")
	assert.Len(t, day.Keynotes, 2)
	assert.Contains(t, day.Summary, "飛龍在天")
}

func TestDay_LunarLabel(t *testing.T) {
	env := newTestEnv(t)
	env.writeConfig(t, "lunar: true\n")

	out, err := env.run("--format", "json", "day", "2025-12-20")
	require.NoError(t, err)

	_, day, _ := decode[DayResult](t, out)
	assert.NotEqual(t, fortune.LunarPlaceholder, day.Lunar)
	assert.Contains(t, day.Lunar, "月 ")
}

func TestDay_Text(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("day")
	require.NoError(t, err)

	assert.Contains(t, out, "甲子日")
	assert.Contains(t, out, "2025-12-21")
	assert.Contains(t, out, "疾厄宮")
	assert.Contains(t, out, "受阻 (Blocked)")
	assert.Contains(t, out, "太陽忌")
	assert.Contains(t, out, "潛龍勿用")
}

func TestRange_JSON(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("--format", "json", "range", "--start", "2025-12-20", "--days", "14")
	require.NoError(t, err)

	_, result, _ := decode[RangeResult](t, out)
	assert.Equal(t, "2025-12-20", result.Start)
	assert.Equal(t, 14, result.Days)
	require.Len(t, result.Records, 14)
	assert.Equal(t, "2026-01-02", result.Records[13].Date)

	s := result.Summary
	assert.Equal(t, 14, s.Count)
	assert.Equal(t, -19, s.Min)
	assert.Equal(t, 26, s.Max)
	assert.InDelta(t, 128.0/14, s.Mean, 1e-9)
	assert.InDelta(t, 11.5, s.Median, 1e-9)
	assert.Len(t, s.Histogram, 7)

	require.Len(t, result.Top, 3)
	assert.Equal(t, []string{"丙寅", "癸亥", "丁卯"}, []string{result.Top[0].Code, result.Top[1].Code, result.Top[2].Code})
	assert.Equal(t, "2025-12-21", result.Bottom[0].Date)
}

func TestRange_DaysFromConfig(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("--format", "json", "range")
	require.NoError(t, err)

	_, result, _ := decode[RangeResult](t, out)
	assert.Equal(t, "2025-12-21", result.Start)
	assert.Equal(t, 5, result.Days)
}

func TestRange_InvalidDays(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("range", "--days", "0")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E201]")
	assert.Contains(t, out, "day count must be at least 1")
}

func TestRange_Text(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("range", "--start", "2025-12-20", "--days", "14")
	require.NoError(t, err)

	assert.Contains(t, out, "癸亥")
	assert.Contains(t, out, "中位數 11.5")
	assert.Contains(t, out, "最佳 2025-12-23 丙寅 (26)")
	assert.Contains(t, out, "[-21, -14)")
}

func TestRecordAndVerify(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("--format", "json", "record", "--start", "2025-12-20", "--days", "14")
	require.NoError(t, err)
	_, rec, _ := decode[RecordResult](t, out)
	assert.Equal(t, RecordResult{Start: "2025-12-20", Days: 14, Recorded: 14}, rec)

	out, err = env.run("--format", "json", "record", "--start", "2025-12-27", "--days", "14")
	require.NoError(t, err)
	_, rec, _ = decode[RecordResult](t, out)
	assert.Equal(t, 7, rec.Recorded)
	assert.Equal(t, 7, rec.Existing)

	out, err = env.run("--format", "json", "verify")
	require.NoError(t, err)
	status, ver, _ := decode[VerifyResult](t, out)
	assert.Equal(t, "ok", status)
	assert.Equal(t, 21, ver.Checked)
	assert.True(t, ver.Deterministic)
	assert.Empty(t, ver.Mismatches)
}

func TestVerify_DetectsMismatch(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("record", "--start", "2025-12-20", "--days", "3")
	require.NoError(t, err)

	st, err := store.Open(env.db)
	require.NoError(t, err)
	_, err = st.RecordReading(context.Background(), store.RecordedReading{
		Day: "2026-01-05", Code: "丁丑", Score: 99, Fingerprint: "0000",
	})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	out, err := env.run("--format", "json", "verify")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))

	status, ver, cliErr := decode[VerifyResult](t, out)
	assert.Equal(t, "error", status)
	require.NotNil(t, cliErr)
	assert.Equal(t, ErrCodeMismatch, cliErr.Code)
	assert.Equal(t, 4, ver.Checked)
	require.Len(t, ver.Mismatches, 1)
	m := ver.Mismatches[0]
	assert.Equal(t, "2026-01-05", m.Day)
	assert.Equal(t, "0000", m.Recorded)
	assert.Equal(t, "丁丑", m.WasCode)
	assert.Equal(t, 99, m.WasScore)
	assert.Equal(t, "己卯", m.Code)
	assert.Equal(t, 33, m.Score)
}

func TestVerify_Range(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("record", "--start", "2025-12-20", "--days", "10")
	require.NoError(t, err)

	out, err := env.run("verify", "--from", "2025-12-22", "--to", "2025-12-24")
	require.NoError(t, err)
	assert.Contains(t, out, "Verified 3 reading(s), 0 mismatch(es)")
}

func TestJournal_AddAndList(t *testing.T) {
	env := newTestEnv(t)

	for _, args := range [][]string{
		{"--kind", "anger", "--note", "塞車"},
		{"--kind", "doubt", "--day", "2025-12-20"},
		{"--kind", "pride", "--note", "first"},
		{"--kind", "greed", "--note", "second"},
	} {
		_, err := env.run(append([]string{"journal", "add"}, args...)...)
		require.NoError(t, err)
	}

	out, err := env.run("--format", "json", "journal", "list")
	require.NoError(t, err)
	_, views, _ := decode[[]JournalView](t, out)
	require.Len(t, views, 3, "default limit shows the latest three")
	assert.Equal(t, "greed", views[0].Kind)
	assert.Equal(t, "second", views[0].Note)
	assert.Equal(t, "pride", views[1].Kind)
	assert.Equal(t, "doubt", views[2].Kind)
	assert.Equal(t, "2025-12-20", views[2].Day)
	assert.Len(t, views[0].BodyHash, 64)

	out, err = env.run("--format", "json", "journal", "list", "--day", "2025-12-21", "--limit", "0")
	require.NoError(t, err)
	_, views, _ = decode[[]JournalView](t, out)
	require.Len(t, views, 3)
	assert.Equal(t, "anger", views[2].Kind)
	assert.Equal(t, "塞車", views[2].Note)

	out, err = env.run("journal", "list", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "轉化貪執")
	assert.Contains(t, out, "second")
}

func TestJournal_InvalidKind(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("journal", "add", "--kind", "envy")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E201]")
	assert.Contains(t, out, `invalid kind "envy"`)
}

func TestJournal_KindRequired(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("journal", "add", "--note", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kind")
}

func TestJournal_EmptyList(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("journal", "list")
	require.NoError(t, err)
	assert.Equal(t, "No journal notes.\n", out)
}

func TestJournalView_RawBody(t *testing.T) {
	view := journalView(store.JournalEntry{ID: "id-1", Day: "2025-12-20", Kind: "doubt", Body: []byte("plain text")})
	assert.Equal(t, "plain text", view.Note)
}
