package student_test

import (
	"encoding/json"
	"testing"

	"github.com/haifazahra-ui/pi-sosmed/internal/student"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMajorIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *student.MajorID
		wantErr bool
	}{
		{"Number", `{"major_id":3}`, majorID(3), false},
		{"NumericString", `{"major_id":"12"}`, majorID(12), false},
		{"PaddedString", `{"major_id":" 5 "}`, majorID(5), false},
		{"Null", `{"major_id":null}`, nil, false},
		{"Absent", `{}`, nil, false},
		{"Word", `{"major_id":"science"}`, nil, true},
		{"EmptyString", `{"major_id":""}`, nil, true},
		{"Fraction", `{"major_id":1.5}`, nil, true},
		{"Bool", `{"major_id":true}`, nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var s student.Student
			err := json.Unmarshal([]byte(tc.input), &s)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, s.MajorID)
		})
	}
}

func TestMajorIDMarshalsAsNumber(t *testing.T) {
	b, err := json.Marshal(student.Student{MajorID: majorID(9)})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"major_id":9`)
}

func majorID(v int) *student.MajorID {
	m := student.MajorID(v)
	return &m
}
