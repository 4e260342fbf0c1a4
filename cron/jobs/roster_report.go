package jobs

import (
	"go.uber.org/zap"

	activityRepo "mergington.GO/model/repository/activity"
)

// RosterReportName is the cron job name of the roster report.
const RosterReportName = "rosterreport"

// RosterReport logs participant counts against capacity for every activity.
// Capacity is informational; activities over it are logged at warn level.
func RosterReport(repo *activityRepo.ActivityRepository, log *zap.Logger) func() {
	return func() {
		c := repo.List()
		total := 0
		for _, a := range c.Ordered() {
			n := len(a.Participants)
			total += n
			fields := []zap.Field{
				zap.String("activity", a.Name),
				zap.Int("participants", n),
				zap.Int("max_participants", a.MaxParticipants),
			}
			if n > a.MaxParticipants {
				log.Warn("activity over capacity", fields...)
				continue
			}
			log.Info("activity roster", fields...)
		}
		log.Info("roster report done", zap.Int("activities", c.Len()), zap.Int("participants", total))
	}
}
