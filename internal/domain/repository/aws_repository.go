package repository

import (
	"context"
	"time"

	"github.com/diillson/aws-idle-audit-go/internal/domain/entity"
)

// AWSRepository defines the interface for AWS API interactions.
// Every detector compares resource timestamps against threshold, which callers
// compute per invocation.
type AWSRepository interface {
	// Account Operations
	GetAccountID(ctx context.Context) (string, error)
	Region() string

	// EBS
	GetStaleSnapshots(ctx context.Context) ([]entity.StaleSnapshot, error)
	GetOldUnusedVolumes(ctx context.Context, threshold time.Time) ([]entity.UnusedVolume, error)

	// Networking
	GetLoadBalancersWithoutTargets(ctx context.Context) ([]entity.LoadBalancerWithoutTargets, error)
	GetIdleNatGateways(ctx context.Context) ([]entity.IdleNatGateway, error)
	GetUnattachedElasticIPs(ctx context.Context) ([]entity.UnattachedElasticIP, error)

	// Compute & Storage
	GetLongStoppedInstances(ctx context.Context, threshold time.Time) ([]entity.StoppedInstance, error)
	GetUnusedBuckets(ctx context.Context, threshold time.Time, thresholdDays int) ([]entity.UnusedBucket, error)
}
