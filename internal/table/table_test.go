// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		columns []string
		rows    [][]string
		errIs   error
		errMsg  string
	}{
		{
			name:    "header and rows",
			input:   "Name,Age\nAlice,30\nBob,25\n",
			columns: []string{"Name", "Age"},
			rows:    [][]string{{"Alice", "30"}, {"Bob", "25"}},
		},
		{
			name:    "no trailing newline",
			input:   "Name,Age\nAlice,30",
			columns: []string{"Name", "Age"},
			rows:    [][]string{{"Alice", "30"}},
		},
		{
			name:    "quoted fields with commas and newlines",
			input:   "Name,Note\n\"Smith, Jane\",\"line one\nline two\"\n",
			columns: []string{"Name", "Note"},
			rows:    [][]string{{"Smith, Jane", "line one\nline two"}},
		},
		{
			name:    "strips byte order mark from first header",
			input:   "\ufeffName,Age\nAlice,30\n",
			columns: []string{"Name", "Age"},
			rows:    [][]string{{"Alice", "30"}},
		},
		{
			name:    "skips blank lines",
			input:   "Name\n\nAlice\n\nBob\n",
			columns: []string{"Name"},
			rows:    [][]string{{"Alice"}, {"Bob"}},
		},
		{
			name:    "skips whitespace-only lines",
			input:   "Name,Age\nAlice,30\n   \n\t\nBob,25\n",
			columns: []string{"Name", "Age"},
			rows:    [][]string{{"Alice", "30"}, {"Bob", "25"}},
		},
		{
			name:    "skips whitespace-only lines before header",
			input:   "  \n\nName\nAlice\n",
			columns: []string{"Name"},
			rows:    [][]string{{"Alice"}},
		},
		{
			name:    "keeps quoted whitespace cell",
			input:   "Name\n\"   \"\nBob\n",
			columns: []string{"Name"},
			rows:    [][]string{{"   "}, {"Bob"}},
		},
		{
			name:    "pads short rows",
			input:   "Name,Age,City\nAlice,30\n",
			columns: []string{"Name", "Age", "City"},
			rows:    [][]string{{"Alice", "30", ""}},
		},
		{
			name:    "keeps surrounding whitespace",
			input:   "Name\n  Alice  \n",
			columns: []string{"Name"},
			rows:    [][]string{{"  Alice  "}},
		},
		{
			name:    "header only",
			input:   "Name,Age\n",
			columns: []string{"Name", "Age"},
		},
		{
			name:  "empty input",
			input: "",
			errIs: ErrEmpty,
		},
		{
			name:  "blank lines only",
			input: "\n\n\n",
			errIs: ErrEmpty,
		},
		{
			name:  "whitespace only",
			input: "   \n\t\n",
			errIs: ErrEmpty,
		},
		{
			name:  "byte order mark only",
			input: "\ufeff",
			errIs: ErrEmpty,
		},
		{
			name:   "row longer than header",
			input:  "Name,Age\nAlice,30\nBob,25,extra\n",
			errMsg: "line 3: expected 2 fields, saw 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Read(strings.NewReader(tt.input))
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				return
			}
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.columns, tbl.Columns())
			assert.Equal(t, len(tt.rows), tbl.Len())
			for i, want := range tt.rows {
				assert.Equal(t, want, tbl.rows[i], "row %d", i)
			}
		})
	}
}

func TestIndexDuplicateHeader(t *testing.T) {
	tbl, err := Read(strings.NewReader("Name,Age,Name\nAlice,30,Ally\n"))
	require.NoError(t, err)

	i, ok := tbl.Index("Name")
	require.True(t, ok)
	assert.Equal(t, 0, i)

	values, err := tbl.Values("Name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, values)
}

func TestColumnsReturnsCopy(t *testing.T) {
	tbl, err := Read(strings.NewReader("Name,Age\n"))
	require.NoError(t, err)

	cols := tbl.Columns()
	cols[0] = "changed"
	assert.Equal(t, []string{"Name", "Age"}, tbl.Columns())
}

func TestProject(t *testing.T) {
	tbl, err := Read(strings.NewReader("Age,Name,City\n30,Alice,Paris\n25,Bob,Oslo\n41,Carol,Rome\n"))
	require.NoError(t, err)

	proj, err := tbl.Project("Name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name"}, proj.Columns())
	assert.Equal(t, tbl.Len(), proj.Len())

	values, err := proj.Values("Name")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, values)

	// The source table is unchanged.
	assert.Equal(t, []string{"Age", "Name", "City"}, tbl.Columns())
}

func TestProjectMissingColumn(t *testing.T) {
	tbl, err := Read(strings.NewReader("Age,City\n30,Paris\n"))
	require.NoError(t, err)

	_, err = tbl.Project("Name")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrColumnNotFound))
	assert.Contains(t, err.Error(), `"Name"`)
}

func TestWrite(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain values",
			input: "Name,Age\nAlice,30\nBob,25\n",
			want:  "Name\nAlice\nBob\n",
		},
		{
			name:  "quotes values that need it",
			input: "Name\n\"Smith, Jane\"\n\"say \"\"hi\"\"\"\n",
			want:  "Name\n\"Smith, Jane\"\n\"say \"\"hi\"\"\"\n",
		},
		{
			name:  "empty cells survive",
			input: "Name,Age\n,30\nBob,25\n",
			want:  "Name\n\"\"\nBob\n",
		},
		{
			name:  "header only",
			input: "Age,Name\n",
			want:  "Name\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Read(strings.NewReader(tt.input))
			require.NoError(t, err)
			proj, err := tbl.Project("Name")
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, proj.Write(&buf))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	input := "Name,Age\nAlice,30\n,31\n\"Smith, Jane\",40\n\"multi\nline\",50\n  padded  ,60\n"
	tbl, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	proj, err := tbl.Project("Name")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, proj.Write(&buf))

	back, err := Read(&buf)
	require.NoError(t, err)
	want, err := tbl.Values("Name")
	require.NoError(t, err)
	got, err := back.Values("Name")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLabels(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   []string
	}{
		{name: "distinct names unchanged", header: "Age,City", want: []string{"Age", "City"}},
		{name: "empty names numbered by position", header: "Age,,City,", want: []string{"Age", "Unnamed: 1", "City", "Unnamed: 3"}},
		{name: "repeated names suffixed", header: "Age,Age,City,Age", want: []string{"Age", "Age.1", "City", "Age.2"}},
		{name: "suffix avoids existing name", header: "Age,Age.1,Age", want: []string{"Age", "Age.1", "Age.2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Read(strings.NewReader(tt.header + "\n"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, tbl.Labels())
		})
	}
}
