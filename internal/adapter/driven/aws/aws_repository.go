package aws

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudtrail"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
	"github.com/diillson/aws-idle-audit-go/internal/domain/repository"
	"github.com/diillson/aws-idle-audit-go/internal/shared/logger"
	"github.com/diillson/aws-idle-audit-go/internal/shared/types"
)

// Os detectores dependem apenas destas interfaces estreitas, satisfeitas pelos
// clientes do SDK v2 e por fakes nos testes.

type ec2API interface {
	DescribeSnapshots(ctx context.Context, params *ec2.DescribeSnapshotsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSnapshotsOutput, error)
	DescribeVolumes(ctx context.Context, params *ec2.DescribeVolumesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVolumesOutput, error)
	DescribeInstances(ctx context.Context, params *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	DescribeNatGateways(ctx context.Context, params *ec2.DescribeNatGatewaysInput, optFns ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error)
	DescribeAddresses(ctx context.Context, params *ec2.DescribeAddressesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeAddressesOutput, error)
}

type elbv2API interface {
	DescribeLoadBalancers(ctx context.Context, params *elasticloadbalancingv2.DescribeLoadBalancersInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeLoadBalancersOutput, error)
	DescribeTargetGroups(ctx context.Context, params *elasticloadbalancingv2.DescribeTargetGroupsInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeTargetGroupsOutput, error)
	DescribeTargetHealth(ctx context.Context, params *elasticloadbalancingv2.DescribeTargetHealthInput, optFns ...func(*elasticloadbalancingv2.Options)) (*elasticloadbalancingv2.DescribeTargetHealthOutput, error)
}

type s3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type cloudTrailAPI interface {
	LookupEvents(ctx context.Context, params *cloudtrail.LookupEventsInput, optFns ...func(*cloudtrail.Options)) (*cloudtrail.LookupEventsOutput, error)
}

type stsAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// clients agrupa os clientes de serviço usados por uma execução.
type clients struct {
	ec2        ec2API
	elbv2      elbv2API
	s3         s3API
	cloudtrail cloudTrailAPI
	sts        stsAPI
}

// AWSRepositoryImpl implementa o AWSRepository para uma única conta/região.
type AWSRepositoryImpl struct {
	region    string
	pageLimit int
	clients   clients
	log       *logger.Logger
}

// LoadAWSConfig carrega a configuração do SDK para a região e o perfil informados.
func LoadAWSConfig(ctx context.Context, region, profile string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config for region %s: %w", region, err)
	}
	return cfg, nil
}

// NewAWSRepository cria uma nova implementação do AWSRepository a partir de uma aws.Config.
func NewAWSRepository(cfg aws.Config, pageLimit int, log *logger.Logger) repository.AWSRepository {
	return newAWSRepository(cfg.Region, pageLimit, clients{
		ec2:        ec2.NewFromConfig(cfg),
		elbv2:      elasticloadbalancingv2.NewFromConfig(cfg),
		s3:         s3.NewFromConfig(cfg),
		cloudtrail: cloudtrail.NewFromConfig(cfg),
		sts:        sts.NewFromConfig(cfg),
	}, log)
}

func newAWSRepository(region string, pageLimit int, c clients, log *logger.Logger) *AWSRepositoryImpl {
	if pageLimit < 1 {
		pageLimit = types.DefaultPageLimit
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AWSRepositoryImpl{
		region:    region,
		pageLimit: pageLimit,
		clients:   c,
		log:       log.With("region", region),
	}
}

// Region returns the region every client is bound to.
func (r *AWSRepositoryImpl) Region() string {
	return r.region
}

func (r *AWSRepositoryImpl) GetAccountID(ctx context.Context) (string, error) {
	result, err := r.clients.sts.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting account ID: %w", err)
	}
	return aws.ToString(result.Account), nil
}

// apiErrorCode returns the provider error code carried by err, if any.
func apiErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
