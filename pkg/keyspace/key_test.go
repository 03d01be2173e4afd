package keyspace

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	one := strings.Repeat("0", 63) + "1"

	tests := []struct {
		name    string
		input   string
		want    Key
		wantErr bool
	}{
		{"key one", one, FromUint64(1), false},
		{"upper case", strings.Repeat("0", 62) + "AB", FromUint64(0xab), false},
		{"mixed case", strings.Repeat("0", 60) + "aBcD", FromUint64(0xabcd), false},
		{"too short", one[1:], Key{}, true},
		{"too long", one + "0", Key{}, true},
		{"0x prefix", "0x" + one[2:], Key{}, true},
		{"non hex", strings.Repeat("g", 64), Key{}, true},
		{"empty", "", Key{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedHex)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKey_StringRoundTrip(t *testing.T) {
	s := "00000000000000000000000000000000000000000000000000000000deadbeef"
	k, err := ParseHex(strings.ToUpper(s))
	require.NoError(t, err)
	assert.Equal(t, s, k.String())
	assert.Equal(t, uint64(0xdeadbeef), k.Big().Uint64())
}

func TestFromBig(t *testing.T) {
	k, err := FromBig(big.NewInt(258))
	require.NoError(t, err)
	assert.Equal(t, FromUint64(258), k)

	_, err = FromBig(big.NewInt(-1))
	assert.ErrorIs(t, err, ErrKeyTooLarge)

	_, err = FromBig(new(big.Int).Lsh(big.NewInt(1), 256))
	assert.ErrorIs(t, err, ErrKeyTooLarge)
}

func TestMaxPrivateKey(t *testing.T) {
	assert.Equal(t, "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364140", MaxPrivateKey.String())

	n, err := FromBig(CurveOrder)
	require.NoError(t, err)
	assert.Equal(t, n, MaxPrivateKey.Add(1))
}

func TestCompare(t *testing.T) {
	a := FromUint64(5)
	b := FromUint64(6)
	assert.Equal(t, -1, Compare(a, b))
	assert.Equal(t, 1, Compare(b, a))
	assert.Equal(t, 0, Compare(a, a))

	var high Key
	high[0] = 1
	assert.Equal(t, 1, Compare(high, FromUint64(^uint64(0))))
}
