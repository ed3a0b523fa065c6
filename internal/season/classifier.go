package season

import "go.uber.org/zap"

// Classifier memoizes a Policy against the last classified day. It is not
// safe for concurrent use; Service serializes access.
type Classifier struct {
	policy    Policy
	logger    *zap.Logger
	dayOnly   bool
	cachedDay int
	cachedHem Hemisphere
	cached    Indicators

	recomputations int
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) ClassifierOption {
	return func(c *Classifier) {
		if l != nil {
			c.logger = l
		}
	}
}

// MemoByDayOnly keys the memo on the day alone. A hemisphere change on an
// unchanged day then keeps returning the previous hemisphere's indicators.
func MemoByDayOnly(on bool) ClassifierOption {
	return func(c *Classifier) {
		c.dayOnly = on
	}
}

// NewClassifier creates a Classifier with an empty memo.
func NewClassifier(policy Policy, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		policy:    policy,
		logger:    zap.NewNop(),
		cachedDay: UnknownDay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Policy returns the active policy.
func (c *Classifier) Policy() Policy {
	return c.policy
}

// Classify returns the season indicators for day. A disabled classifier
// reports no season and leaves the memo alone.
func (c *Classifier) Classify(day int, h Hemisphere, enabled bool) (Indicators, error) {
	if !enabled {
		return Indicators{}, nil
	}
	if err := checkDay(day); err != nil {
		return Indicators{}, err
	}
	if c.hit(day, h) {
		return c.cached, nil
	}

	prev := c.cachedDay
	in := c.policy.Classify(day, h)

	c.cachedDay = day
	c.cachedHem = h
	c.cached = in
	c.recomputations++

	c.logger.Debug("season recomputed",
		zap.String("policy", c.policy.Name()),
		zap.Stringer("hemisphere", h),
		zap.Int("from_day", prev),
		zap.Int("day", day),
		zap.Stringer("seasons", in),
	)
	return in, nil
}

func (c *Classifier) hit(day int, h Hemisphere) bool {
	if day != c.cachedDay {
		return false
	}
	return c.dayOnly || h == c.cachedHem
}

// Recomputations counts how often the policy was evaluated.
func (c *Classifier) Recomputations() int {
	return c.recomputations
}

// Reset forgets the memo so the next call recomputes.
func (c *Classifier) Reset() {
	c.cachedDay = UnknownDay
	c.cached = Indicators{}
}
