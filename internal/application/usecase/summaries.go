package usecase

import (
	"github.com/diillson/aws-idle-audit-go/internal/domain/entity"
)

// printSummaries mostra cada categoria no console, na ordem dos detectores.
func (uc *AuditUseCase) printSummaries(report entity.AuditReport) {
	if len(report.UnusedSnapshots) == 0 {
		uc.console.LogInfo("No snapshots need to be deleted.")
	} else {
		table := uc.console.CreateTable()
		table.AddColumn("Snapshot")
		table.AddColumn("Volume")
		table.AddColumn("Reason")
		for _, s := range report.UnusedSnapshots {
			table.AddRow(s.SnapshotID, s.VolumeID, s.Reason)
		}
		uc.console.LogWarning("Snapshots to be deleted: %d", len(report.UnusedSnapshots))
		uc.console.Println(table.Render())
	}

	if len(report.UnusedVolumes) == 0 {
		uc.console.LogInfo("No old unused volumes found.")
	} else {
		table := uc.console.CreateTable()
		table.AddColumn("Volume")
		table.AddColumn("Last Used")
		for _, v := range report.UnusedVolumes {
			lastUsed := "never"
			if v.LastUsedTime != nil {
				lastUsed = *v.LastUsedTime
			}
			table.AddRow(v.VolumeID, lastUsed)
		}
		uc.console.LogWarning("List of old unused volumes:")
		uc.console.Println(table.Render())
	}

	if len(report.LoadBalancers) == 0 {
		uc.console.LogInfo("No load balancers without targets found.")
	} else {
		table := uc.console.CreateTable()
		table.AddColumn("Load Balancer")
		table.AddColumn("Empty Target Group")
		for _, lb := range report.LoadBalancers {
			table.AddRow(lb.LoadBalancerName, lb.TargetGroupArn)
		}
		uc.console.LogWarning("List of load balancers without targets:")
		uc.console.Println(table.Render())
	}

	if len(report.UnattachedNATGateways) == 0 {
		uc.console.LogInfo("No unattached NAT Gateways found.")
	} else {
		table := uc.console.CreateTable()
		table.AddColumn("NAT Gateway")
		table.AddColumn("State")
		table.AddColumn("VPC")
		table.AddColumn("Subnet")
		for _, nat := range report.UnattachedNATGateways {
			table.AddRow(nat.NatGatewayID, nat.State, nat.VpcID, nat.SubnetID)
		}
		uc.console.LogWarning("List of unattached NAT Gateways:")
		uc.console.Println(table.Render())
	}

	if len(report.UnattachedElasticIPs) == 0 {
		uc.console.LogInfo("No unattached Elastic IPs found.")
	} else {
		table := uc.console.CreateTable()
		table.AddColumn("Public IP")
		table.AddColumn("Allocation ID")
		for _, eip := range report.UnattachedElasticIPs {
			table.AddRow(eip.PublicIP, eip.AllocationID)
		}
		uc.console.LogWarning("List of unattached Elastic IPs:")
		uc.console.Println(table.Render())
	}

	if len(report.StoppedInstances) == 0 {
		uc.console.LogInfo("No EC2 instances have been stopped for more than %d days.", uc.cfg.ThresholdDays)
	} else {
		table := uc.console.CreateTable()
		table.AddColumn("Instance")
		table.AddColumn("Stopped Since")
		for _, inst := range report.StoppedInstances {
			table.AddRow(inst.InstanceID, inst.StoppedSince)
		}
		uc.console.LogWarning("List of EC2 instances stopped for more than %d days:", uc.cfg.ThresholdDays)
		uc.console.Println(table.Render())
	}

	if len(report.UnusedBuckets) == 0 {
		uc.console.LogInfo("All buckets are actively being used.")
	} else {
		table := uc.console.CreateTable()
		table.AddColumn("Bucket")
		table.AddColumn("Status")
		for _, b := range report.UnusedBuckets {
			table.AddRow(b.BucketName, b.Status)
		}
		uc.console.LogWarning("List of unused buckets (no objects or no recent access):")
		uc.console.Println(table.Render())
	}
}
