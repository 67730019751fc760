package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Operator 負責報告書掃描檔在 S3 上的存取
type Operator struct {
	// Client 是 S3 客戶端
	Client *s3.Client
	// Bucket 是存放掃描檔的 bucket 名稱
	Bucket string
	// PublicEndpoint 是 bucket 的公開 Endpoint
	PublicEndpoint *url.URL
}

func NewOperator(client *s3.Client, bucket, publicBaseURL string) (*Operator, error) {
	const op = "NewOperator"
	publicEndpoint, err := url.Parse(publicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to parse public base URL, err=%w", op, err)
	}
	return &Operator{Client: client, Bucket: bucket, PublicEndpoint: publicEndpoint}, nil
}

// UploadScan 上傳報告書掃描檔並回傳公開 URL
func (o *Operator) UploadScan(ctx context.Context, key, contentType string, content []byte) (string, error) {
	const op = "UploadScan"
	_, err := o.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(o.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("[%s] Fail to upload scan to S3, err=%w", op, err)
	}
	uri := *o.PublicEndpoint
	uri.Path = key
	return uri.String(), nil
}
