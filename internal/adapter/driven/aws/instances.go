package aws

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/diillson/aws-idle-audit-go/internal/domain/entity"
	"github.com/diillson/aws-idle-audit-go/internal/shared/types"
)

const (
	userInitiatedMarker = "User initiated"
	stopReasonLayout    = "2006-01-02 15:04:05 GMT"
	stoppedSinceLayout  = "2006-01-02T15:04:05-07:00"
)

// GetLongStoppedInstances retorna instâncias paradas pelo usuário antes do threshold.
// Motivos sem o marcador "User initiated" são ignorados em silêncio; datas
// ilegíveis são registradas em log e ignoradas.
func (r *AWSRepositoryImpl) GetLongStoppedInstances(ctx context.Context, threshold time.Time) ([]entity.StoppedInstance, error) {
	stopped := []entity.StoppedInstance{}

	paginator := ec2.NewDescribeInstancesPaginator(r.clients.ec2, &ec2.DescribeInstancesInput{
		Filters: []ec2Types.Filter{{Name: aws.String("instance-state-name"), Values: []string{"stopped"}}},
	})
	for page := 0; page < r.pageLimit && paginator.HasMorePages(); page++ {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describing stopped instances: %w", err)
		}

		for _, res := range output.Reservations {
			for _, inst := range res.Instances {
				instanceID := aws.ToString(inst.InstanceId)
				reason := aws.ToString(inst.StateTransitionReason)

				stopTime, ok, err := parseStopTime(reason)
				if err != nil {
					r.log.WithFields(map[string]interface{}{
						"instance_id": instanceID,
						"reason":      reason,
					}).WithError(err).Warn("skipping instance due to incorrect date format")
					continue
				}
				if !ok || !stopTime.Before(threshold) {
					continue
				}

				r.log.WithFields(map[string]interface{}{
					"instance_id": instanceID,
					"stopped_at":  stopTime,
				}).Debugf("long stopped instance")
				stopped = append(stopped, entity.StoppedInstance{
					InstanceID:   instanceID,
					StoppedSince: stopTime.Format(stoppedSinceLayout),
				})
			}
		}
	}
	return stopped, nil
}

// parseStopTime extracts the stop time from a reason such as
// "User initiated (2023-01-01 00:00:00 GMT)". ok is false when the reason is
// not a user-initiated stop.
func parseStopTime(reason string) (stopTime time.Time, ok bool, err error) {
	if !strings.Contains(reason, userInitiatedMarker) {
		return time.Time{}, false, nil
	}

	raw := reason
	if i := strings.LastIndex(reason, "("); i >= 0 {
		raw = reason[i+1:]
	}
	raw = strings.Trim(raw, ")")

	stopTime, err = time.ParseInLocation(stopReasonLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w %q: %v", types.ErrInvalidStopTime, raw, err)
	}
	return stopTime.UTC(), true, nil
}
