// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sequencenumber

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const expectedSNLength = 32

func TestGenerateSequenceNumberWith(t *testing.T) {
	sng := NewGeneratorWith(func(_ time.Time) int64 { return 1234554320123 }, func() string { return "nUfojcH2M5j2j3Tk5A1mf2" })

	testCases := []struct {
		name     string
		input    int64
		expected string
	}{
		{
			name:     "最小ID",
			input:    1,
			expected: "0001",
		},
		{
			name:     "不需要补零的ID",
			input:    123456789,
			expected: "6789",
		},
		{
			name:     "四位上限ID",
			input:    9999,
			expected: "9999",
		},
		{
			name:     "需要补零的ID",
			input:    123450000,
			expected: "0000",
		},
		{
			name:     "超过四位的ID",
			input:    10000,
			expected: "0000",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			sn, err := sng.Generate(tc.input)
			require.NoError(t, err)
			assert.Len(t, sn, expectedSNLength)
			assert.Equal(t, tc.expected, sn[13:17])
		})
	}
}

func TestGenerateSequenceNumberUniqueness(t *testing.T) {
	// 同一毫秒内生成的参考号也必须互不相同
	sng := NewGenerator()
	const n = 1000
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		sn, err := sng.Generate(234)
		require.NoError(t, err)
		assert.Len(t, sn, expectedSNLength)
		_, ok := seen[sn]
		assert.Falsef(t, ok, "重复的参考号: %s", sn)
		seen[sn] = struct{}{}
	}
}
