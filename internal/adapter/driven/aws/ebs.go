package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	ctTypes "github.com/aws/aws-sdk-go-v2/service/cloudtrail/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/diillson/aws-idle-audit-go/internal/domain/entity"
	"github.com/diillson/aws-idle-audit-go/internal/shared/types"
)

const (
	volumeNotFoundCode = "InvalidVolume.NotFound"
	lastUsedLayout     = "2006-01-02 15:04:05"
	volumeEventLimit   = 10
)

// GetStaleSnapshots retorna snapshots próprios cujo volume de origem não existe
// mais ou não está anexado a nenhuma instância.
func (r *AWSRepositoryImpl) GetStaleSnapshots(ctx context.Context) ([]entity.StaleSnapshot, error) {
	stale := []entity.StaleSnapshot{}

	paginator := ec2.NewDescribeSnapshotsPaginator(r.clients.ec2, &ec2.DescribeSnapshotsInput{
		OwnerIds: []string{"self"},
	})
	for page := 0; page < r.pageLimit && paginator.HasMorePages(); page++ {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describing snapshots: %w", err)
		}

		for _, snap := range output.Snapshots {
			snapshotID := aws.ToString(snap.SnapshotId)
			volumeID := aws.ToString(snap.VolumeId)

			reason, err := r.snapshotStaleReason(ctx, volumeID)
			if err != nil {
				return nil, err
			}
			if reason == "" {
				continue
			}

			r.log.WithFields(map[string]interface{}{
				"snapshot_id": snapshotID,
				"volume_id":   volumeID,
				"reason":      reason,
			}).Debugf("stale snapshot")
			stale = append(stale, entity.StaleSnapshot{
				SnapshotID: snapshotID,
				VolumeID:   volumeID,
				Reason:     reason,
			})
		}
	}
	return stale, nil
}

// snapshotStaleReason returns "" when the snapshot's volume exists and is attached.
func (r *AWSRepositoryImpl) snapshotStaleReason(ctx context.Context, volumeID string) (string, error) {
	if volumeID == "" {
		return entity.SnapshotReasonNoVolume, nil
	}

	volume, err := r.describeVolume(ctx, volumeID)
	switch {
	case errors.Is(err, types.ErrVolumeNotFound):
		return entity.SnapshotReasonVolumeNotFound, nil
	case err != nil:
		return "", err
	case len(volume.Attachments) == 0:
		return entity.SnapshotReasonVolumeUnattached, nil
	}
	return "", nil
}

// describeVolume looks up a single volume. The lookup is done one id at a time
// because EC2 fails the whole request when any id in the batch is missing.
func (r *AWSRepositoryImpl) describeVolume(ctx context.Context, volumeID string) (ec2Types.Volume, error) {
	output, err := r.clients.ec2.DescribeVolumes(ctx, &ec2.DescribeVolumesInput{
		VolumeIds: []string{volumeID},
	})
	if err != nil {
		if apiErrorCode(err) == volumeNotFoundCode {
			return ec2Types.Volume{}, fmt.Errorf("%w: %s", types.ErrVolumeNotFound, volumeID)
		}
		return ec2Types.Volume{}, fmt.Errorf("describing volume %s: %w", volumeID, err)
	}
	if len(output.Volumes) == 0 {
		return ec2Types.Volume{}, fmt.Errorf("%w: %s", types.ErrVolumeNotFound, volumeID)
	}
	return output.Volumes[0], nil
}

// GetOldUnusedVolumes retorna volumes "available" cujo último evento no CloudTrail
// é anterior ao threshold. Volumes sem nenhum evento são sempre incluídos.
func (r *AWSRepositoryImpl) GetOldUnusedVolumes(ctx context.Context, threshold time.Time) ([]entity.UnusedVolume, error) {
	unused := []entity.UnusedVolume{}

	paginator := ec2.NewDescribeVolumesPaginator(r.clients.ec2, &ec2.DescribeVolumesInput{
		Filters: []ec2Types.Filter{{Name: aws.String("status"), Values: []string{"available"}}},
	})
	for page := 0; page < r.pageLimit && paginator.HasMorePages(); page++ {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describing volumes: %w", err)
		}

		for _, vol := range output.Volumes {
			// o filtro já garante isso, mas fakes e respostas parciais não
			if vol.State != ec2Types.VolumeStateAvailable {
				continue
			}
			volumeID := aws.ToString(vol.VolumeId)

			lastUsed, err := r.lastVolumeActivity(ctx, volumeID)
			if err != nil {
				return nil, err
			}
			if lastUsed != nil && !lastUsed.Before(threshold) {
				continue
			}

			record := entity.UnusedVolume{VolumeID: volumeID}
			if lastUsed != nil {
				formatted := lastUsed.Format(lastUsedLayout)
				record.LastUsedTime = &formatted
			}
			r.log.WithFields(map[string]interface{}{
				"volume_id": volumeID,
				"last_used": record.LastUsedTime,
			}).Debugf("old unused volume")
			unused = append(unused, record)
		}
	}
	return unused, nil
}

// lastVolumeActivity returns the newest CloudTrail event time for the volume,
// in UTC, or nil when the first page of events is empty.
func (r *AWSRepositoryImpl) lastVolumeActivity(ctx context.Context, volumeID string) (*time.Time, error) {
	output, err := r.clients.cloudtrail.LookupEvents(ctx, &cloudtrail.LookupEventsInput{
		LookupAttributes: []ctTypes.LookupAttribute{{
			AttributeKey:   ctTypes.LookupAttributeKeyResourceName,
			AttributeValue: aws.String(volumeID),
		}},
		MaxResults: aws.Int32(volumeEventLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("looking up events for volume %s: %w", volumeID, err)
	}

	var latest *time.Time
	for _, event := range output.Events {
		if event.EventTime == nil {
			continue
		}
		t := event.EventTime.UTC()
		if latest == nil || t.After(*latest) {
			latest = &t
		}
	}
	return latest, nil
}
