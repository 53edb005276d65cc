package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/diillson/aws-idle-audit-go/internal/domain/entity"
)

// idleNatStates are the NAT gateway lifecycle states that no longer route traffic.
var idleNatStates = map[ec2Types.NatGatewayState]bool{
	ec2Types.NatGatewayStateDeleted:  true,
	ec2Types.NatGatewayStateDeleting: true,
	ec2Types.NatGatewayStateFailed:   true,
}

// GetLoadBalancersWithoutTargets retorna uma entrada por target group vazio.
// Um LB com K target groups sem targets aparece K vezes.
func (r *AWSRepositoryImpl) GetLoadBalancersWithoutTargets(ctx context.Context) ([]entity.LoadBalancerWithoutTargets, error) {
	result := []entity.LoadBalancerWithoutTargets{}

	lbPaginator := elasticloadbalancingv2.NewDescribeLoadBalancersPaginator(r.clients.elbv2, &elasticloadbalancingv2.DescribeLoadBalancersInput{})
	for page := 0; page < r.pageLimit && lbPaginator.HasMorePages(); page++ {
		lbsOutput, err := lbPaginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describing load balancers: %w", err)
		}

		for _, lb := range lbsOutput.LoadBalancers {
			lbArn := aws.ToString(lb.LoadBalancerArn)
			lbName := aws.ToString(lb.LoadBalancerName)

			emptyGroups, err := r.emptyTargetGroups(ctx, lbArn)
			if err != nil {
				return nil, err
			}
			for _, tgArn := range emptyGroups {
				r.log.WithFields(map[string]interface{}{
					"load_balancer": lbName,
					"target_group":  tgArn,
				}).Debugf("target group without registered targets")
				result = append(result, entity.LoadBalancerWithoutTargets{
					LoadBalancerName: lbName,
					LoadBalancerArn:  lbArn,
					TargetGroupArn:   tgArn,
				})
			}
		}
	}
	return result, nil
}

// emptyTargetGroups returns the ARNs of the load balancer's target groups that
// have no registered targets, in API order.
func (r *AWSRepositoryImpl) emptyTargetGroups(ctx context.Context, lbArn string) ([]string, error) {
	var empty []string

	tgPaginator := elasticloadbalancingv2.NewDescribeTargetGroupsPaginator(r.clients.elbv2, &elasticloadbalancingv2.DescribeTargetGroupsInput{
		LoadBalancerArn: aws.String(lbArn),
	})
	for page := 0; page < r.pageLimit && tgPaginator.HasMorePages(); page++ {
		tgOutput, err := tgPaginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describing target groups of %s: %w", lbArn, err)
		}

		for _, tg := range tgOutput.TargetGroups {
			healthOutput, err := r.clients.elbv2.DescribeTargetHealth(ctx, &elasticloadbalancingv2.DescribeTargetHealthInput{
				TargetGroupArn: tg.TargetGroupArn,
			})
			if err != nil {
				return nil, fmt.Errorf("describing target health of %s: %w", aws.ToString(tg.TargetGroupArn), err)
			}
			if len(healthOutput.TargetHealthDescriptions) == 0 {
				empty = append(empty, aws.ToString(tg.TargetGroupArn))
			}
		}
	}
	return empty, nil
}

// GetIdleNatGateways retorna NAT Gateways em estados deleted, deleting ou failed.
func (r *AWSRepositoryImpl) GetIdleNatGateways(ctx context.Context) ([]entity.IdleNatGateway, error) {
	idle := []entity.IdleNatGateway{}

	paginator := ec2.NewDescribeNatGatewaysPaginator(r.clients.ec2, &ec2.DescribeNatGatewaysInput{})
	for page := 0; page < r.pageLimit && paginator.HasMorePages(); page++ {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("describing NAT gateways: %w", err)
		}

		for _, nat := range output.NatGateways {
			if !idleNatStates[nat.State] {
				continue
			}
			record := entity.IdleNatGateway{
				NatGatewayID: aws.ToString(nat.NatGatewayId),
				State:        string(nat.State),
				VpcID:        aws.ToString(nat.VpcId),
				SubnetID:     aws.ToString(nat.SubnetId),
			}
			r.log.WithFields(map[string]interface{}{
				"nat_gateway_id": record.NatGatewayID,
				"state":          record.State,
			}).Debugf("idle NAT gateway")
			idle = append(idle, record)
		}
	}
	return idle, nil
}

// GetUnattachedElasticIPs retorna endereços alocados sem AssociationId.
func (r *AWSRepositoryImpl) GetUnattachedElasticIPs(ctx context.Context) ([]entity.UnattachedElasticIP, error) {
	result, err := r.clients.ec2.DescribeAddresses(ctx, &ec2.DescribeAddressesInput{})
	if err != nil {
		return nil, fmt.Errorf("describing addresses: %w", err)
	}

	free := []entity.UnattachedElasticIP{}
	for _, addr := range result.Addresses {
		if addr.AssociationId != nil {
			continue
		}
		record := entity.UnattachedElasticIP{
			PublicIP:     aws.ToString(addr.PublicIp),
			AllocationID: aws.ToString(addr.AllocationId),
		}
		r.log.WithFields(map[string]interface{}{
			"public_ip":     record.PublicIP,
			"allocation_id": record.AllocationID,
		}).Debugf("unattached elastic IP")
		free = append(free, record)
	}
	return free, nil
}
