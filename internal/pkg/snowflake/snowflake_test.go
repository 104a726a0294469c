package snowflake

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_NewGenerate(t *testing.T) {
	testcases := []struct {
		name        string
		nodeId      uint
		apps        uint
		wantErrFunc require.ErrorAssertionFunc
	}{
		{
			name:   "nodeId超出限制",
			nodeId: 32,
			apps:   6,
			wantErrFunc: func(t require.TestingT, err error, _ ...interface{}) {
				require.ErrorIs(t, err, ErrExceedNode)
			},
		},
		{
			name:   "appId超出限制",
			nodeId: 3,
			apps:   33,
			wantErrFunc: func(t require.TestingT, err error, _ ...interface{}) {
				require.ErrorIs(t, err, ErrExceedApp)
			},
		},
		{
			name:        "生成正常",
			nodeId:      0,
			apps:        6,
			wantErrFunc: require.NoError,
		},
	}
	for _, tt := range testcases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMallIDGenerator(tt.nodeId, tt.apps)
			tt.wantErrFunc(t, err)
		})
	}
}

func Test_Generate(t *testing.T) {
	idmaker, err := NewMallIDGenerator(1, 2)
	require.NoError(t, err)
	seen := make(map[int64]struct{})
	for i := 0; i < 2; i++ {
		for j := 0; j < 10000; j++ {
			id, err := idmaker.Generate(uint(i))
			require.NoError(t, err)
			_, ok := seen[id.Int64()]
			require.False(t, ok)
			seen[id.Int64()] = struct{}{}
			require.Equal(t, uint(i), id.AppID())
		}
	}
	_, err = idmaker.Generate(5)
	require.ErrorIs(t, err, ErrUnknownApp)
}
