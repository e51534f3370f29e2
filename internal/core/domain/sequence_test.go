package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/crossbow/internal/core/domain"
)

func samplePlan() []domain.SequenceItem {
	return []domain.SequenceItem{
		{ID: 1, Kind: domain.SequenceTask, Label: "a"},
		{ID: 2, Kind: domain.SequenceParallel, Items: []domain.SequenceItem{
			{ID: 3, Kind: domain.SequenceTask, Label: "b"},
			{ID: 4, Kind: domain.SequenceSeries, Items: []domain.SequenceItem{
				{ID: 5, Kind: domain.SequenceTask, Label: "c", Stats: &domain.Stats{Skipped: true}},
			}},
		}},
	}
}

func TestLeaves(t *testing.T) {
	var labels []string
	for _, leaf := range domain.Leaves(samplePlan()) {
		labels = append(labels, leaf.Label)
	}

	assert.Equal(t, []string{"a", "b", "c"}, labels)
}

func TestClonePlan(t *testing.T) {
	plan := samplePlan()
	c := domain.ClonePlan(plan)

	c[1].Items[0].Label = "changed"
	c[1].Items[1].Items[0].Stats.Skipped = false
	c[1].Items = append(c[1].Items, domain.SequenceItem{ID: 6})

	assert.Equal(t, "b", plan[1].Items[0].Label)
	assert.True(t, plan[1].Items[1].Items[0].Stats.Skipped)
	assert.Len(t, plan[1].Items, 2)
	assert.Nil(t, domain.ClonePlan(nil))
}

func TestKindFor(t *testing.T) {
	assert.Equal(t, domain.SequenceParallel, domain.KindFor(domain.RunParallel))
	assert.Equal(t, domain.SequenceSeries, domain.KindFor(domain.RunSeries))
	assert.Equal(t, domain.SequenceSeries, domain.KindFor(""))
	assert.Equal(t, "parallel", domain.SequenceParallel.String())
	assert.True(t, (&domain.SequenceItem{Kind: domain.SequenceSeries}).IsGroup())
	assert.False(t, (&domain.SequenceItem{Kind: domain.SequenceTask}).IsGroup())
}
