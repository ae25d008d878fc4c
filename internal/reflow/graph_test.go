/*
Copyright 2026 The Reflow Authors.
Licensed under the Apache License, Version 2.0.
*/

package reflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/factoryops/reflow/internal/document"
)

func depOnly(id string, deps ...string) document.WorkOrderDocument {
	return document.WorkOrderDocument{
		DocID:   id,
		DocType: document.TypeWorkOrder,
		Data:    document.WorkOrderData{DependsOnWorkOrderIDs: deps},
	}
}

func TestBuildGraph(t *testing.T) {
	t.Run("collects dependencies per order", func(t *testing.T) {
		graph, err := BuildGraph([]document.WorkOrderDocument{
			depOnly("A"),
			depOnly("B", "A"),
			depOnly("C", "A", "B"),
		})
		require.NoError(t, err)
		assert.Empty(t, graph["A"])
		assert.Contains(t, graph["B"], "A")
		assert.Len(t, graph["C"], 2)
	})

	t.Run("all unknown identifiers reported at once", func(t *testing.T) {
		_, err := BuildGraph([]document.WorkOrderDocument{
			depOnly("A", "ghost-1"),
			depOnly("B", "ghost-2", "ghost-1"),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownDependency))
		assert.Contains(t, err.Error(), "ghost-1")
		assert.Contains(t, err.Error(), "ghost-2")
	})
}

func TestTopologicalSort(t *testing.T) {
	t.Run("dependencies precede dependents", func(t *testing.T) {
		sorted, err := TopologicalSort([]document.WorkOrderDocument{
			depOnly("C", "B"),
			depOnly("A"),
			depOnly("B", "A"),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C"}, sorted)
	})

	t.Run("independent orders keep input order", func(t *testing.T) {
		sorted, err := TopologicalSort([]document.WorkOrderDocument{
			depOnly("X"),
			depOnly("Y"),
			depOnly("Z"),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"X", "Y", "Z"}, sorted)
	})

	t.Run("newly freed orders queue behind existing roots", func(t *testing.T) {
		// A frees B, but the root D was queued first.
		sorted, err := TopologicalSort([]document.WorkOrderDocument{
			depOnly("A"),
			depOnly("B", "A"),
			depOnly("D"),
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "D", "B"}, sorted)
	})

	t.Run("cycle reports the stuck orders", func(t *testing.T) {
		_, err := TopologicalSort([]document.WorkOrderDocument{
			depOnly("A", "B"),
			depOnly("B", "A"),
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCircularDependency))
		assert.Contains(t, err.Error(), "A")
		assert.Contains(t, err.Error(), "B")
	})

	t.Run("unknown dependency fails before sorting", func(t *testing.T) {
		_, err := TopologicalSort([]document.WorkOrderDocument{depOnly("A", "missing")})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownDependency))
	})
}
