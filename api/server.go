package api

import (
	"context"
	"fmt"

	awsCfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"polifund/adapters/identity"
	oidcAdapter "polifund/adapters/oidc"
	internalS3 "polifund/adapters/s3"
	"polifund/models"
)

const defaultMaxScanBytes = 10 << 20

type ServerImpl struct {
	verifier    oidcAdapter.ITokenVerifier
	users       *identity.Service
	guard       *identity.Middleware
	s3Operator  *internalS3.Operator
	textChecker *bluemonday.Policy
	db          *gorm.DB

	config ServerConfig
}

func NewServer(config ServerConfig) (*ServerImpl, error) {
	const op = "NewServer"

	// 初始化token驗證器
	issuerURL := config.Auth0.IssuerURL
	if issuerURL == "" {
		issuerURL = fmt.Sprintf("https://%s/", config.Auth0.Domain)
	}
	verifierOpts := []oidcAdapter.VerifierOption{}
	if len(config.Auth0.Algorithms) > 0 {
		verifierOpts = append(verifierOpts, oidcAdapter.WithSupportedAlgorithms(config.Auth0.Algorithms...))
	}
	verifier := oidcAdapter.NewVerifier(issuerURL, config.Auth0.Audience, verifierOpts...)

	// 初始化S3客戶端
	s3Cfg, err := awsCfg.LoadDefaultConfig(
		context.Background(),
		awsCfg.WithBaseEndpoint(config.S3.Endpoint),
		awsCfg.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(config.S3.AccessKeyID, config.S3.SecretAccessKey, "")),
		awsCfg.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to load AWS config, err=%w", op, err)
	}
	s3Operator, err := internalS3.NewOperator(s3.NewFromConfig(s3Cfg), config.S3.Bucket, config.S3.PublicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to create S3 operator, err=%w", op, err)
	}

	// 初始化資料庫連線
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable&search_path=%s", config.DB.User, config.DB.Password, config.DB.Host, config.DB.Port, config.DB.Database, config.DB.Schema)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: config.DB.Schema + ".",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("[%s] Fail to connect to database, err=%w", op, err)
	}

	// 建立資料表並寫入預設角色
	// 缺少預設角色時首次登入無法指派角色，啟動階段就直接失敗
	if err := models.Migrate(db); err != nil {
		return nil, fmt.Errorf("[%s] err=%w", op, err)
	}
	if err := models.SeedRoles(db); err != nil {
		return nil, fmt.Errorf("[%s] err=%w", op, err)
	}
	if err := models.CheckDefaultRole(db); err != nil {
		return nil, fmt.Errorf("[%s] err=%w", op, err)
	}

	users := identity.NewService(db)
	return &ServerImpl{
		verifier:    verifier,
		users:       users,
		guard:       identity.NewMiddleware(verifier, users),
		s3Operator:  s3Operator,
		textChecker: bluemonday.StrictPolicy(),
		db:          db,
		config:      config,
	}, nil
}

// RegisterRoutes 註冊所有端點
// 公開端點不經過授權關卡，其餘依權限分為一般使用者與管理者兩組
func (impl *ServerImpl) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", impl.GetHealth)
	router.GET("/auth/config", impl.GetAuthConfig)
	router.GET("/profile", impl.GetProfile)

	authed := router.Group("", impl.guard.RequireUser())
	authed.GET("/users/me", impl.GetUsersMe)
	authed.GET("/candidates", impl.GetCandidates)
	authed.GET("/candidates/:candidateID", impl.GetCandidateByID)
	authed.GET("/election-funds", impl.GetElectionFunds)

	admin := router.Group("", impl.guard.RequireAdmin())
	admin.GET("/users", impl.GetUsers)
	admin.GET("/users/:userID", impl.GetUserByID)
	admin.POST("/political-funds", impl.PostPoliticalFunds)
	admin.GET("/political-funds", impl.GetPoliticalFunds)
	admin.GET("/political-funds/:fundID", impl.GetPoliticalFundByID)
	admin.POST("/political-funds/:fundID/attachments", impl.PostPoliticalFundAttachments)
	admin.POST("/election-funds", impl.PostElectionFunds)
	admin.GET("/election-funds/:fundID", impl.GetElectionFundByID)
	admin.POST("/candidates", impl.PostCandidates)
}

func (impl *ServerImpl) Close() {
	sqlDB, err := impl.db.DB()
	if err != nil {
		return
	}
	sqlDB.Close()
}
