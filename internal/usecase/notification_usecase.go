package usecase

import (
	"context"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/mail"
	"jobboard/internal/ws"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const notifyConcurrency = 8

// JobMatchPusher delivers real-time match events to connected users.
type JobMatchPusher interface {
	PushJobMatched(userID uuid.UUID, evt ws.JobMatchedEvent) error
}

type JobNotifier interface {
	NotifyNewJob(ctx context.Context, j job.Job) (int, error)
}

type Notification struct {
	users       user.Repository
	mailer      mail.Sender
	pusher      JobMatchPusher
	frontEndURL string
	threshold   float64
	logger      *zap.Logger
	now         func() time.Time
}

type NotificationDeps struct {
	Users       user.Repository
	Mailer      mail.Sender
	Pusher      JobMatchPusher
	FrontEndURL string
	Threshold   float64
	Logger      *zap.Logger
}

func NewNotificationUsecase(d NotificationDeps) *Notification {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	threshold := d.Threshold
	if threshold <= 0 {
		threshold = matching.NotifyThreshold
	}
	return &Notification{
		users:       d.Users,
		mailer:      d.Mailer,
		pusher:      d.Pusher,
		frontEndURL: d.FrontEndURL,
		threshold:   threshold,
		logger:      logger,
		now:         time.Now,
	}
}

// NotifyNewJob tells every job seeker whose profile matches j. Delivery
// failures for one recipient are logged and do not stop the others; the
// returned count is the number of recipients selected.
func (n *Notification) NotifyNewJob(ctx context.Context, j job.Job) (int, error) {
	seekers, err := n.users.ListJobSeekers(ctx)
	if err != nil {
		return 0, ErrInternal
	}
	recipients := matching.SelectRecipients(j, seekers, n.threshold)
	if len(recipients) == 0 {
		return 0, nil
	}

	url := n.frontEndURL + "/jobs/" + j.ID.String()
	evt := ws.NewJobMatchedEvent(j.ID, j.Title, j.Company, j.Location, url, n.now())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(notifyConcurrency)
	for _, r := range recipients {
		g.Go(func() error {
			n.deliver(gctx, r, j, url, evt)
			return nil
		})
	}
	_ = g.Wait()

	n.logger.Info("new job notifications sent",
		zap.String("job_id", j.ID.String()),
		zap.Int("recipients", len(recipients)),
	)
	return len(recipients), nil
}

func (n *Notification) deliver(ctx context.Context, r user.User, j job.Job, url string, evt ws.JobMatchedEvent) {
	if n.mailer != nil {
		msg, err := mail.NewJobPost(r.Email, mail.NewJobData{Title: j.Title, Company: j.Company, Location: j.Location, URL: url})
		if err == nil {
			err = n.mailer.Send(ctx, msg)
		}
		if err != nil {
			n.logger.Warn("new job mail failed", zap.String("user_id", r.ID.String()), zap.Error(err))
		}
	}
	if n.pusher != nil {
		if err := n.pusher.PushJobMatched(r.ID, evt); err != nil {
			n.logger.Warn("job match push failed", zap.String("user_id", r.ID.String()), zap.Error(err))
		}
	}
}
