package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/schedsim/model"
	"github.com/viant/schedsim/service/dao"
)

func TestService(t *testing.T) {
	arena := New()
	ctx := context.Background()

	p1 := model.NewProcess(1, 0, 3, 1, model.Vector{1})
	p2 := model.NewProcess(2, 0, 3, 1, model.Vector{2})
	assert.NoError(t, arena.Save(ctx, p1))
	assert.NoError(t, arena.Save(ctx, p2))
	assert.Equal(t, model.Handle(1), p1.Handle)
	assert.Equal(t, model.Handle(2), p2.Handle)

	// saving the same record again keeps its handle
	assert.NoError(t, arena.Save(ctx, p1))
	assert.Equal(t, model.Handle(1), p1.Handle)
	assert.ErrorIs(t, arena.Save(ctx, model.NewProcess(1, 0, 1, 1, nil)), dao.ErrDuplicateID)

	loaded, err := arena.Load(ctx, 2)
	assert.NoError(t, err)
	assert.Same(t, p2, loaded)
	assert.Same(t, p1, arena.Get(p1.Handle))

	assert.NoError(t, arena.Delete(ctx, 1))
	assert.Nil(t, arena.Get(model.Handle(1)))
	assert.False(t, p1.Handle.Valid())
	assert.Same(t, p2, arena.Get(model.Handle(2)), "handles of other records stay stable")

	_, err = arena.Load(ctx, 1)
	assert.ErrorIs(t, err, dao.ErrNotFound)
	assert.ErrorIs(t, arena.Delete(ctx, 1), dao.ErrNotFound)

	list, err := arena.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []*model.Process{p2}, list)
	assert.Equal(t, 1, arena.Len())
}

func TestService_InvalidInput(t *testing.T) {
	arena := New()
	ctx := context.Background()

	testCases := []struct {
		name    string
		process *model.Process
		err     error
	}{
		{name: "nil entity", process: nil, err: dao.ErrNilEntity},
		{name: "zero id", process: &model.Process{}, err: dao.ErrInvalidID},
		{name: "negative id", process: &model.Process{ID: -3}, err: dao.ErrInvalidID},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, arena.Save(ctx, tc.process), tc.err)
		})
	}
	assert.Nil(t, arena.Get(model.NoHandle))
	assert.Nil(t, arena.Get(model.Handle(42)))
}
