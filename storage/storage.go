// Package storage persists report documents in S3 or an API-compatible object
// store such as minIO. Documents are written once at upload time and read back
// through expiring retrieval URLs.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/verixa-platform/verixa-api/domain"
)

// DocumentURL is a retrieval URL for a stored report document and the time it
// stops working.
type DocumentURL struct {
	URL        string
	Expiration time.Time
}

type storeConfig struct {
	accessKeyID     string
	secretAccessKey string
	endpoint        string
	region          string
	bucket          string
	disableSSL      bool
	presign         bool
}

func configFromEnv() storeConfig {
	c := storeConfig{
		accessKeyID:     domain.Env.AwsAccessKeyID,
		secretAccessKey: domain.Env.AwsSecretAccessKey,
		endpoint:        domain.Env.AwsS3Endpoint,
		region:          domain.Env.AwsRegion,
		bucket:          domain.Env.AwsS3Bucket,
		disableSSL:      domain.Env.AwsS3DisableSSL,
	}

	if domain.Env.GoEnv == domain.EnvDevelopment || domain.Env.GoEnv == domain.EnvTest {
		c.accessKeyID = "abc123"
		c.secretAccessKey = "abcd1234"
	}

	// a non-empty endpoint means minIO is in use, which doesn't support the S3 object URL scheme
	if !strings.HasPrefix(domain.Env.AwsS3ACL, "public") || c.endpoint != "" {
		c.presign = true
	}
	return c
}

func connect(c storeConfig) (*s3.S3, error) {
	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(c.accessKeyID, c.secretAccessKey, ""),
		Endpoint:         aws.String(c.endpoint),
		Region:           aws.String(c.region),
		DisableSSL:       aws.Bool(c.disableSSL),
		S3ForcePathStyle: aws.Bool(c.endpoint != ""),
	})
	if err != nil {
		return nil, err
	}
	return s3.New(sess), nil
}

func documentURL(c storeConfig, svc *s3.S3, key string) (DocumentURL, error) {
	var docURL DocumentURL

	if !c.presign {
		docURL.URL = fmt.Sprintf("https://%s.s3.amazonaws.com/%s", c.bucket, url.PathEscape(key))
		docURL.Expiration = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)
		return docURL, nil
	}

	req, _ := svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})

	lifespan := time.Duration(domain.Env.AwsS3URLLifeMinutes) * time.Minute
	signed, err := req.Presign(lifespan)
	if err != nil {
		return docURL, err
	}
	docURL.URL = signed
	// expire slightly early so a URL handed to a client is never already dead
	docURL.Expiration = time.Now().Add(lifespan - time.Minute)
	return docURL, nil
}

// StoreDocument writes the document bytes under key and returns a URL from which
// they can be retrieved.
func StoreDocument(key, contentType string, content []byte) (DocumentURL, error) {
	c := configFromEnv()

	svc, err := connect(c)
	if err != nil {
		return DocumentURL{}, err
	}

	acl := ""
	if !c.presign {
		acl = domain.Env.AwsS3ACL
	}
	if _, err := svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		ACL:         aws.String(acl),
		Body:        bytes.NewReader(content),
	}); err != nil {
		return DocumentURL{}, err
	}

	return documentURL(c, svc, key)
}

// GetDocumentURL returns a URL for a stored document that needs no further
// credentials to fetch, either a public object URL or a pre-signed one.
func GetDocumentURL(key string) (DocumentURL, error) {
	c := configFromEnv()

	svc, err := connect(c)
	if err != nil {
		return DocumentURL{}, err
	}

	return documentURL(c, svc, key)
}

// CreateS3Bucket creates the configured bucket for local development and tests.
// An already-existing bucket is not an error.
func CreateS3Bucket() error {
	env := domain.Env.GoEnv
	if env != domain.EnvTest && env != domain.EnvDevelopment {
		return errors.New("CreateS3Bucket should only be used in test and development")
	}

	c := configFromEnv()

	svc, err := connect(c)
	if err != nil {
		return err
	}

	if _, err := svc.CreateBucket(&s3.CreateBucketInput{Bucket: &c.bucket}); err != nil {
		if aerr, ok := err.(awserr.Error); ok {
			switch aerr.Code() {
			case s3.ErrCodeBucketAlreadyExists:
			case s3.ErrCodeBucketAlreadyOwnedByYou:
			default:
				return err
			}
		}
	}
	return nil
}
