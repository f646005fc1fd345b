// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

package jobgraph_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	jobgraph "github.com/xaoctech/jobgraph-go"
)

func TestDistinctColorCycles(t *testing.T) {
	chk := require.New(t)

	first := jobgraph.DistinctColor(0)
	chk.Equal(jobgraph.RGB(255, 0, 0), first)

	// The palette repeats once the index runs past its end.
	chk.Equal(first, jobgraph.DistinctColor(36))
	chk.NotEqual(first, jobgraph.DistinctColor(1))
}

func TestDistinctColorNegativeIndexPanics(t *testing.T) {
	require.New(t).Panics(func() { jobgraph.DistinctColor(-1) })
}

func TestRGBIsOpaque(t *testing.T) {
	require.New(t).Equal(uint8(255), jobgraph.RGB(1, 2, 3).A)
}
