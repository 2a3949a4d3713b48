package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/dedupe"
	"github.com/ericogr/pocket-arena/internal/game"
	"github.com/ericogr/pocket-arena/internal/logging"
)

// LoadTrainerShared loads a trainer for read-only use. The name is trimmed
// once and that form is both the dedupe key and the lookup. Concurrent calls
// for the same name share one repository round-trip, so callers must not
// mutate the returned value.
func LoadTrainerShared(ctx context.Context, repo interface {
	GetTrainerByName(string) (*game.Trainer, error)
}, name string) (*game.Trainer, error) {
	name = strings.TrimSpace(name)
	key := dedupe.TrainerKey(name)
	ch := dedupe.TrainerGroup.DoChan(key, func() (interface{}, error) {
		return repo.GetTrainerByName(name)
	})
	select {
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		if r.Shared {
			logging.Debug("trainer read shared", logging.Fields{constants.LogFieldKey: key})
		}
		t, ok := r.Val.(*game.Trainer)
		if !ok {
			return nil, fmt.Errorf("unexpected result type from singleflight")
		}
		return t, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
