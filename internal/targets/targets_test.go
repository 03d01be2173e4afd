package targets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/btc-puzzle/pkg/btcaddr"
)

const (
	addrA = "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"
	addrB = "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm"
	addrC = "1PWo3JeB9jrGwfHDNpdGK54CRas7fsVzXU"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTextParser_ParseTargets(t *testing.T) {
	path := writeFile(t, "targets.txt", "# puzzle targets\n"+addrA+"\n\n  "+addrB+"  \n")

	addrs, err := (&TextParser{}).ParseTargets(path)
	require.NoError(t, err)
	assert.Equal(t, []string{addrA, addrB}, addrs)
}

func TestJSONParser_ParseTargets(t *testing.T) {
	tests := []struct {
		name    string
		parser  *JSONParser
		content string
		want    []string
	}{
		{"wallets object", &JSONParser{}, `{"wallets": ["` + addrA + `", "` + addrC + `"]}`, []string{addrA, addrC}},
		{"bare array", &JSONParser{}, ` ["` + addrB + `"]`, []string{addrB}},
		{"custom field", &JSONParser{Field: "targets"}, `{"targets": ["` + addrC + `"]}`, []string{addrC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addrs, err := tt.parser.ParseTargets(writeFile(t, "targets.json", tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, addrs)
		})
	}
}

func TestJSONParser_ParseTargets_Invalid(t *testing.T) {
	p := &JSONParser{}

	_, err := p.ParseTargets(writeFile(t, "a.json", `{"addresses": []}`))
	assert.Error(t, err)

	_, err = p.ParseTargets(writeFile(t, "b.json", `{"wallets": [1, 2]}`))
	assert.Error(t, err)

	_, err = p.ParseTargets(writeFile(t, "c.json", `not json`))
	assert.Error(t, err)

	_, err = p.ParseTargets(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestCSVParser_ParseTargets(t *testing.T) {
	content := "id, Address, reward\n71, " + addrC + ", 7.1\n1, " + addrA + ", 0\n2,,0\n"

	addrs, err := (&CSVParser{}).ParseTargets(writeFile(t, "targets.csv", content))
	require.NoError(t, err)
	assert.Equal(t, []string{addrC, addrA}, addrs)

	_, err = (&CSVParser{Column: "wallet"}).ParseTargets(writeFile(t, "other.csv", content))
	assert.Error(t, err)
}

func TestParserFor(t *testing.T) {
	assert.IsType(t, &JSONParser{}, ParserFor("a/b.JSON"))
	assert.IsType(t, &CSVParser{}, ParserFor("b.csv"))
	assert.IsType(t, &TextParser{}, ParserFor("c.txt"))
	assert.IsType(t, &TextParser{}, ParserFor("addresses"))
}

func TestSet_Contains(t *testing.T) {
	set, err := NewSet([]string{addrA, addrC, addrA})
	require.NoError(t, err)

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{addrA, addrC}, set.Addresses())
	assert.True(t, set.Contains(addrA))
	assert.True(t, set.Contains(addrC))
	assert.False(t, set.Contains(addrB))
	assert.False(t, set.Contains(""))
	assert.False(t, set.Contains(btcaddr.InvalidKey))
}

func TestSet_NoFalseNegatives(t *testing.T) {
	var addrs []string
	for i := 0; i < 200; i++ {
		hash := make([]byte, btcaddr.HashLength)
		hash[0], hash[19] = byte(i), byte(i*7)
		addrs = append(addrs, btcaddr.EncodeAddress(hash))
	}

	set, err := NewSet(addrs)
	require.NoError(t, err)
	for _, addr := range addrs {
		assert.True(t, set.Contains(addr), addr)
	}
}

func TestNewSet_Errors(t *testing.T) {
	_, err := NewSet(nil)
	assert.ErrorIs(t, err, ErrEmptySet)

	_, err = NewSet([]string{addrA, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"})
	assert.ErrorIs(t, err, btcaddr.ErrUnsupportedTarget)
}

func TestLoad(t *testing.T) {
	set, err := Load(writeFile(t, "targets.json", `{"wallets": ["`+addrB+`"]}`))
	require.NoError(t, err)
	assert.True(t, set.Contains(addrB))

	set, err = Load(writeFile(t, "targets.txt", addrA+"\n"+addrC+"\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())

	_, err = Load(writeFile(t, "empty.txt", "# nothing\n"))
	assert.ErrorIs(t, err, ErrEmptySet)
}
