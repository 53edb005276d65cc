package entity

import "time"

// Report categories, in detector order.
const (
	CategorySnapshots     = "Unused-snapshots"
	CategoryVolumes       = "Unused-volumes"
	CategoryLoadBalancers = "loadbalancer-without-target"
	CategoryNatGateways   = "UnattachedNATGateways"
	CategoryElasticIPs    = "UnattachedElasticIPs"
	CategoryInstances     = "stopped-instances"
	CategoryBuckets       = "Unused-s3-buckets"
)

// Categories lists every report key in the order the detectors run.
var Categories = []string{
	CategorySnapshots,
	CategoryVolumes,
	CategoryLoadBalancers,
	CategoryNatGateways,
	CategoryElasticIPs,
	CategoryInstances,
	CategoryBuckets,
}

// AuditReport agrega os achados de todos os detectores de uma execução.
type AuditReport struct {
	UnattachedNATGateways []IdleNatGateway             `json:"UnattachedNATGateways"`
	UnattachedElasticIPs  []UnattachedElasticIP        `json:"UnattachedElasticIPs"`
	StoppedInstances      []StoppedInstance            `json:"stopped-instances"`
	UnusedBuckets         []UnusedBucket               `json:"Unused-s3-buckets"`
	LoadBalancers         []LoadBalancerWithoutTargets `json:"loadbalancer-without-target"`
	UnusedVolumes         []UnusedVolume               `json:"Unused-volumes"`
	UnusedSnapshots       []StaleSnapshot              `json:"Unused-snapshots"`
}

// NewAuditReport returns a report whose lists encode as [] instead of null.
func NewAuditReport() AuditReport {
	return AuditReport{
		UnattachedNATGateways: []IdleNatGateway{},
		UnattachedElasticIPs:  []UnattachedElasticIP{},
		StoppedInstances:      []StoppedInstance{},
		UnusedBuckets:         []UnusedBucket{},
		LoadBalancers:         []LoadBalancerWithoutTargets{},
		UnusedVolumes:         []UnusedVolume{},
		UnusedSnapshots:       []StaleSnapshot{},
	}
}

// Counts returns the number of findings per category.
func (r AuditReport) Counts() map[string]int {
	return map[string]int{
		CategorySnapshots:     len(r.UnusedSnapshots),
		CategoryVolumes:       len(r.UnusedVolumes),
		CategoryLoadBalancers: len(r.LoadBalancers),
		CategoryNatGateways:   len(r.UnattachedNATGateways),
		CategoryElasticIPs:    len(r.UnattachedElasticIPs),
		CategoryInstances:     len(r.StoppedInstances),
		CategoryBuckets:       len(r.UnusedBuckets),
	}
}

// Total returns the number of findings across all categories.
func (r AuditReport) Total() int {
	total := 0
	for _, n := range r.Counts() {
		total += n
	}
	return total
}

// AuditRun descreve uma execução do job, usada em logs, métricas e exportação.
type AuditRun struct {
	RunID      string         `json:"run_id"`
	AccountID  string         `json:"account_id,omitempty"`
	Region     string         `json:"region"`
	Threshold  time.Time      `json:"threshold"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt time.Time      `json:"finished_at"`
	Counts     map[string]int `json:"counts"`
	MessageID  string         `json:"message_id,omitempty"`
	Published  bool           `json:"published"`
}

// InvocationResult is the payload returned to the Lambda runtime.
type InvocationResult struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Finding is a flattened view of one report entry, used for tables and CSV.
type Finding struct {
	Category   string
	ResourceID string
	Detail     string
}

// Findings flattens the report in category order.
func (r AuditReport) Findings() []Finding {
	findings := make([]Finding, 0, r.Total())
	for _, s := range r.UnusedSnapshots {
		detail := s.Reason
		if s.VolumeID != "" {
			detail = s.Reason + " (" + s.VolumeID + ")"
		}
		findings = append(findings, Finding{CategorySnapshots, s.SnapshotID, detail})
	}
	for _, v := range r.UnusedVolumes {
		detail := "never used"
		if v.LastUsedTime != nil {
			detail = "last used " + *v.LastUsedTime
		}
		findings = append(findings, Finding{CategoryVolumes, v.VolumeID, detail})
	}
	for _, lb := range r.LoadBalancers {
		findings = append(findings, Finding{CategoryLoadBalancers, lb.LoadBalancerName, lb.TargetGroupArn})
	}
	for _, n := range r.UnattachedNATGateways {
		findings = append(findings, Finding{CategoryNatGateways, n.NatGatewayID, n.State + " in " + n.VpcID})
	}
	for _, e := range r.UnattachedElasticIPs {
		findings = append(findings, Finding{CategoryElasticIPs, e.PublicIP, e.AllocationID})
	}
	for _, i := range r.StoppedInstances {
		findings = append(findings, Finding{CategoryInstances, i.InstanceID, "stopped since " + i.StoppedSince})
	}
	for _, b := range r.UnusedBuckets {
		findings = append(findings, Finding{CategoryBuckets, b.BucketName, b.Status})
	}
	return findings
}
