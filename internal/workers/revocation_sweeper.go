// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"time"

	"github.com/rmorgan-dev/folio/internal/logger"
	"github.com/rmorgan-dev/folio/internal/service"
)

// RevocationSweeper periodically drops expired entries from the token
// revocation set so that it does not grow without bound. Tokens past their
// expiry are rejected by signature validation anyway, so removing them from
// the set does not change any authorization decision.
type RevocationSweeper struct {
	auth     service.AuthService
	interval time.Duration
	logger   *logger.Logger

	stop chan struct{}
	done chan struct{}
}

func NewRevocationSweeper(auth service.AuthService, interval time.Duration, log *logger.Logger) *RevocationSweeper {
	return &RevocationSweeper{
		auth:     auth,
		interval: interval,
		logger:   log,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *RevocationSweeper) Run() {
	go s.loop()
}

func (s *RevocationSweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *RevocationSweeper) loop() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			if removed := s.auth.SweepRevoked(now); removed > 0 {
				s.logger.Debug().Int("removed", removed).Msg("swept expired token revocations")
			}
		}
	}
}
