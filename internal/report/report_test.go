package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloud-ru/mcp-wealth-sim/internal/calculations"
	"github.com/cloud-ru/mcp-wealth-sim/internal/scenario"
)

func runDefault(t *testing.T) *calculations.ScenarioResult {
	t.Helper()
	res, err := calculations.RunScenario(nil, scenario.Default().Scenario())
	require.NoError(t, err)
	return res
}

func TestWriteCSV(t *testing.T) {
	res := runDefault(t)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, res))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 16)
	assert.True(t, strings.HasPrefix(lines[0], "year,house_value,mortgage_balance,home_equity,"))
	assert.True(t, strings.HasPrefix(lines[1], "1,1060000.00,"))
	assert.True(t, strings.HasPrefix(lines[15], "15,"))
}

func TestMoneyMarshalCSV(t *testing.T) {
	got, err := Money(1234.5).MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "1234.50", got)

	got, err = Rate(0.25).MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "0.2500", got)
}

func TestWriteJSON(t *testing.T) {
	res := runDefault(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, res))

	var decoded calculations.ScenarioResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, res.Comparison.Winner, decoded.Comparison.Winner)
	assert.Equal(t, res.Scenario, decoded.Scenario)
}

func TestWriteSummary(t *testing.T) {
	res := runDefault(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, res))

	out := buf.String()
	assert.Contains(t, out, "Горизонт: 15 лет")
	assert.Contains(t, out, "Кредит:              800,000.00")
	assert.Contains(t, out, "Выигрывает: "+string(res.Comparison.Winner))
}
