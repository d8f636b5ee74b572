package headers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "lowercases",
			input: "Simple Poll",
			want:  "simple poll",
		},
		{
			name:  "underscores become spaces",
			input: "Bill_Poll",
			want:  "bill poll",
		},
		{
			name:  "hyphens become spaces",
			input: "bill-poll",
			want:  "bill poll",
		},
		{
			name:  "runs collapse to one space",
			input: "Route -- _ Bill",
			want:  "route bill",
		},
		{
			name:  "leading and trailing separators trimmed",
			input: "__dispense hopper coins--",
			want:  "dispense hopper coins",
		},
		{
			name:  "empty stays empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
		want Class
	}{
		{
			name: "simple poll is common",
			desc: Descriptor{Header: 254, Name: "Simple poll"},
			want: ClassCommon,
		},
		{
			name: "emergency stop is danger",
			desc: Descriptor{Header: 172, Name: "Emergency stop"},
			want: ClassDanger,
		},
		{
			name: "route bill is recycler",
			desc: Descriptor{Header: 154, Name: "Route bill"},
			want: ClassRecycler,
		},
		{
			name: "dispense hopper coins is hopper",
			desc: Descriptor{Header: 167, Name: "Dispense hopper coins"},
			want: ClassHopper,
		},
		{
			name: "modify sorter paths is coin",
			desc: Descriptor{Header: 210, Name: "Modify sorter paths"},
			want: ClassCoin,
		},
		{
			name: "unmatched name is other",
			desc: Descriptor{Header: 4, Name: "Request comms latency"},
			want: ClassOther,
		},
		{
			name: "danger beats common",
			desc: Descriptor{Header: 1, Name: "Reset device simple poll"},
			want: ClassDanger,
		},
		{
			name: "common beats category",
			desc: Descriptor{Header: 229, Name: "Read buffered credit or error codes"},
			want: ClassCommon,
		},
		{
			name: "recycler beats hopper",
			desc: Descriptor{Header: 5, Name: "Recycler hopper transfer"},
			want: ClassRecycler,
		},
		{
			name: "hopper beats coin",
			desc: Descriptor{Header: 6, Name: "Hopper coin level"},
			want: ClassHopper,
		},
		{
			name: "separator variants classify identically",
			desc: Descriptor{Header: 159, Name: "read_buffered-bill   events"},
			want: ClassRecycler,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.desc))
		})
	}
}

func TestClassifySeparatorEquivalence(t *testing.T) {
	variants := []string{"Bill Poll", "bill_poll", "BILL-POLL", "bill  poll"}
	for _, v := range variants {
		assert.Equal(t, ClassRecycler, Classify(Descriptor{Name: v}), "variant %q", v)
	}
}

func TestSplit(t *testing.T) {
	descs := []Descriptor{
		{Header: 254, Name: "Simple poll"},
		{Header: 154, Name: "Route bill"},
		{Header: 167, Name: "Dispense hopper coins"},
		{Header: 210, Name: "Modify sorter paths"},
		{Header: 172, Name: "Emergency stop"},
		{Header: 4, Name: "Request comms latency"},
	}

	cat := Split(descs)

	// All keeps everything in input order
	require.Len(t, cat.All, len(descs))
	assert.Equal(t, 254, cat.All[0].Header)

	require.Len(t, cat.Common, 1)
	assert.Equal(t, 254, cat.Common[0].Header)

	require.Len(t, cat.Recycler, 1)
	assert.Equal(t, 154, cat.Recycler[0].Header)

	require.Len(t, cat.Hopper, 1)
	assert.Equal(t, 167, cat.Hopper[0].Header)

	require.Len(t, cat.Coin, 1)
	assert.Equal(t, 210, cat.Coin[0].Header)

	// Danger and unmatched both land in Other
	require.Len(t, cat.Other, 2)
	assert.True(t, IsDanger(cat.Other[0]))
}

func TestTabList(t *testing.T) {
	cat := Split([]Descriptor{
		{Header: 254, Name: "Simple poll"},
		{Header: 231, Name: "Modify inhibit status"},
		{Header: 154, Name: "Route bill"},
		{Header: 210, Name: "Modify sorter paths"},
		{Header: 172, Name: "Emergency stop"},
	})

	t.Run("category tab is common plus specific", func(t *testing.T) {
		list := cat.TabList(ClassCoin)
		require.Len(t, list, 3)
		assert.Equal(t, 254, list[0].Header)
		assert.Equal(t, 231, list[1].Header)
		assert.Equal(t, 210, list[2].Header)
	})

	t.Run("no duplicates across common and specific", func(t *testing.T) {
		list := cat.TabList(ClassRecycler)
		seen := map[int]bool{}
		for _, d := range list {
			assert.False(t, seen[d.Header], "header %d appears twice", d.Header)
			seen[d.Header] = true
		}
	})

	t.Run("danger excluded from category tabs", func(t *testing.T) {
		for _, class := range []Class{ClassCoin, ClassHopper, ClassRecycler} {
			for _, d := range cat.TabList(class) {
				assert.False(t, IsDanger(d), "danger header %d in %s tab", d.Header, class)
			}
		}
	})

	t.Run("other class returns the full list", func(t *testing.T) {
		list := cat.TabList(ClassOther)
		assert.Len(t, list, 5)
	})
}

func TestMatchesFilter(t *testing.T) {
	routeBill := Descriptor{Header: 154, Name: "Route bill"}

	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{"empty matches", "", true},
		{"whitespace matches", "   ", true},
		{"decimal code", "154", true},
		{"partial decimal", "15", true},
		{"hex lowercase", "0x9a", true},
		{"hex uppercase", "0X9A", true},
		{"name substring", "route", true},
		{"name case-insensitive", "BILL", true},
		{"underscore separator", "route_bill", true},
		{"hyphen separator", "route-bill", true},
		{"no match", "hopper", false},
		{"wrong code", "200", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesFilter(routeBill, tt.query))
		})
	}
}

func TestFilter(t *testing.T) {
	descs := []Descriptor{
		{Header: 254, Name: "Simple poll"},
		{Header: 154, Name: "Route bill"},
		{Header: 159, Name: "Read buffered bill events"},
	}

	t.Run("empty query returns input", func(t *testing.T) {
		assert.Len(t, Filter(descs, ""), 3)
	})

	t.Run("filters by name preserving order", func(t *testing.T) {
		got := Filter(descs, "bill")
		require.Len(t, got, 2)
		assert.Equal(t, 154, got[0].Header)
		assert.Equal(t, 159, got[1].Header)
	})

	t.Run("filters by hex", func(t *testing.T) {
		got := Filter(descs, "0xfe")
		require.Len(t, got, 1)
		assert.Equal(t, 254, got[0].Header)
	})
}

func TestDescriptorLabel(t *testing.T) {
	assert.Equal(t, "Route bill (154, 0x9A)", Descriptor{Header: 154, Name: "Route bill"}.Label())
	assert.Equal(t, "Header 7 (7, 0x07)", Descriptor{Header: 7}.Label())
}

func TestDescriptorHex(t *testing.T) {
	assert.Equal(t, "0x00", Descriptor{Header: 0}.Hex())
	assert.Equal(t, "0x9A", Descriptor{Header: 154}.Hex())
	assert.Equal(t, "0xFF", Descriptor{Header: 255}.Hex())
}
