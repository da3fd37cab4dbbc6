package bench

import "time"

// maxInvocationsPerRound caps the doubling estimator so a pathologically
// fast action cannot grow a round past ~5.4e8 calls.
const maxInvocationsPerRound = int64(1) << 29

// estimateInvocations sizes one round. A single call to the measured work
// may finish below clock resolution, so rounds batch invocations: starting
// from one, a timed batch of the action runs and the count doubles until the
// batch's wall time reaches minTotal or the count hits the cap. An action
// error aborts estimation and propagates.
func estimateInvocations(action Action, minTotal time.Duration) (int64, error) {
	invocations := int64(1)
	for {
		start := time.Now()
		for i := int64(0); i < invocations; i++ {
			if err := action(); err != nil {
				return 0, err
			}
		}
		elapsed := time.Since(start)

		if elapsed >= minTotal || invocations >= maxInvocationsPerRound {
			return invocations, nil
		}
		invocations *= 2
	}
}
