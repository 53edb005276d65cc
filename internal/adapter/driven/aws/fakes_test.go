package aws

import (
	"context"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	ctTypes "github.com/aws/aws-sdk-go-v2/service/cloudtrail/types"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2Types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	elbTypes "github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type fakeEC2 struct {
	snapshots    []ec2Types.Snapshot
	snapshotsErr error

	// volumesByID answers single-id lookups; volumeErrs overrides them.
	volumesByID map[string]ec2Types.Volume
	volumeErrs  map[string]error
	available   []ec2Types.Volume
	volumesErr  error

	instances    []ec2Types.Instance
	instancesErr error

	natGateways []ec2Types.NatGateway
	addresses   []ec2Types.Address

	volumeLookups []string
}

func (f *fakeEC2) DescribeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error) {
	if f.snapshotsErr != nil {
		return nil, f.snapshotsErr
	}
	return &ec2.DescribeSnapshotsOutput{Snapshots: f.snapshots}, nil
}

func (f *fakeEC2) DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error) {
	if len(params.VolumeIds) > 0 {
		id := params.VolumeIds[0]
		f.volumeLookups = append(f.volumeLookups, id)
		if err, ok := f.volumeErrs[id]; ok {
			return nil, err
		}
		if vol, ok := f.volumesByID[id]; ok {
			return &ec2.DescribeVolumesOutput{Volumes: []ec2Types.Volume{vol}}, nil
		}
		return &ec2.DescribeVolumesOutput{}, nil
	}
	if f.volumesErr != nil {
		return nil, f.volumesErr
	}
	return &ec2.DescribeVolumesOutput{Volumes: f.available}, nil
}

func (f *fakeEC2) DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	if f.instancesErr != nil {
		return nil, f.instancesErr
	}
	return &ec2.DescribeInstancesOutput{
		Reservations: []ec2Types.Reservation{{Instances: f.instances}},
	}, nil
}

func (f *fakeEC2) DescribeNatGateways(ctx context.Context, params *ec2.DescribeNatGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error) {
	return &ec2.DescribeNatGatewaysOutput{NatGateways: f.natGateways}, nil
}

func (f *fakeEC2) DescribeAddresses(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error) {
	return &ec2.DescribeAddressesOutput{Addresses: f.addresses}, nil
}

type fakeELB struct {
	loadBalancers []elbTypes.LoadBalancer
	targetGroups  map[string][]elbTypes.TargetGroup
	targets       map[string]int
	healthErr     error
}

func (f *fakeELB) DescribeLoadBalancers(ctx context.Context, params *elasticloadbalancingv2.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeLoadBalancersOutput, error) {
	return &elasticloadbalancingv2.DescribeLoadBalancersOutput{LoadBalancers: f.loadBalancers}, nil
}

func (f *fakeELB) DescribeTargetGroups(ctx context.Context, params *elasticloadbalancingv2.DescribeTargetGroupsInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeTargetGroupsOutput, error) {
	return &elasticloadbalancingv2.DescribeTargetGroupsOutput{
		TargetGroups: f.targetGroups[aws.ToString(params.LoadBalancerArn)],
	}, nil
}

func (f *fakeELB) DescribeTargetHealth(ctx context.Context, params *elasticloadbalancingv2.DescribeTargetHealthInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeTargetHealthOutput, error) {
	if f.healthErr != nil {
		return nil, f.healthErr
	}
	n := f.targets[aws.ToString(params.TargetGroupArn)]
	descriptions := make([]elbTypes.TargetHealthDescription, n)
	return &elasticloadbalancingv2.DescribeTargetHealthOutput{TargetHealthDescriptions: descriptions}, nil
}

// fakeS3 serves objectPages[bucket][i] for continuation token i.
type fakeS3 struct {
	buckets     []s3Types.Bucket
	objectPages map[string][][]s3Types.Object
	listErr     error

	listCalls map[string]int
}

func (f *fakeS3) ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return &s3.ListBucketsOutput{Buckets: f.buckets}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	bucket := aws.ToString(params.Bucket)
	if f.listCalls == nil {
		f.listCalls = map[string]int{}
	}
	f.listCalls[bucket]++

	idx := 0
	if params.ContinuationToken != nil {
		idx, _ = strconv.Atoi(*params.ContinuationToken)
	}
	pages := f.objectPages[bucket]
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	if idx < len(pages) {
		out.Contents = pages[idx]
	}
	if idx+1 < len(pages) {
		out.IsTruncated = aws.Bool(true)
		out.NextContinuationToken = aws.String(strconv.Itoa(idx + 1))
	}
	return out, nil
}

type fakeCloudTrail struct {
	events map[string][]ctTypes.Event
	err    error
}

func (f *fakeCloudTrail) LookupEvents(ctx context.Context, params *cloudtrail.LookupEventsInput, optFns ...func(*cloudtrail.Options)) (*cloudtrail.LookupEventsOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	id := aws.ToString(params.LookupAttributes[0].AttributeValue)
	return &cloudtrail.LookupEventsOutput{Events: f.events[id]}, nil
}

type fakeSTS struct {
	account string
	err     error
}

func (f *fakeSTS) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{Account: aws.String(f.account)}, nil
}

func newTestRepository(c clients) *AWSRepositoryImpl {
	if c.ec2 == nil {
		c.ec2 = &fakeEC2{}
	}
	if c.elbv2 == nil {
		c.elbv2 = &fakeELB{}
	}
	if c.s3 == nil {
		c.s3 = &fakeS3{}
	}
	if c.cloudtrail == nil {
		c.cloudtrail = &fakeCloudTrail{}
	}
	if c.sts == nil {
		c.sts = &fakeSTS{account: "123456789012"}
	}
	return newAWSRepository("eu-west-1", 1, c, nil)
}
