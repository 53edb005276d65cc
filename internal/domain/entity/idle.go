package entity

// Reasons a snapshot is considered stale.
const (
	SnapshotReasonNoVolume         = "no-volume"
	SnapshotReasonVolumeNotFound   = "volume-not-found"
	SnapshotReasonVolumeUnattached = "volume-unattached"
)

// Status labels used for unused buckets.
const (
	BucketStatusEmpty       = "No objects in the bucket"
	BucketStatusNotAccessed = "Bucket not accessed since last %d days"
)

// StaleSnapshot is an EBS snapshot whose source volume is gone or detached.
type StaleSnapshot struct {
	SnapshotID string `json:"SnapshotId"`
	VolumeID   string `json:"VolumeId,omitempty"`
	Reason     string `json:"Reason"`
}

// UnusedVolume is an available EBS volume without recent attach/detach activity.
// LastUsedTime is nil when CloudTrail has no record of the volume.
type UnusedVolume struct {
	VolumeID     string  `json:"VolumeId"`
	LastUsedTime *string `json:"LastUsedTime"`
}

// LoadBalancerWithoutTargets is emitted once per empty target group of a load balancer.
type LoadBalancerWithoutTargets struct {
	LoadBalancerName string `json:"LoadBalancerName"`
	LoadBalancerArn  string `json:"LoadBalancerArn"`
	TargetGroupArn   string `json:"TargetGroupArn,omitempty"`
}

// IdleNatGateway is a NAT gateway in a non-serving lifecycle state.
type IdleNatGateway struct {
	NatGatewayID string `json:"NatGatewayId"`
	State        string `json:"State"`
	VpcID        string `json:"VpcId"`
	SubnetID     string `json:"SubnetId"`
}

// UnattachedElasticIP is an allocated address without an association.
type UnattachedElasticIP struct {
	PublicIP     string `json:"PublicIp"`
	AllocationID string `json:"AllocationId"`
}

// StoppedInstance is an EC2 instance stopped by a user before the threshold.
type StoppedInstance struct {
	InstanceID   string `json:"InstanceId"`
	StoppedSince string `json:"StoppedSince"`
}

// UnusedBucket is an S3 bucket that is empty or has no recent writes.
type UnusedBucket struct {
	BucketName string `json:"BucketName"`
	Status     string `json:"Status"`
}
