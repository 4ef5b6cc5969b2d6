package provider

import (
	"time"

	"github.com/2063ti/flugede-gadgets-store/internal/cache"
	"github.com/2063ti/flugede-gadgets-store/internal/config"
	"github.com/2063ti/flugede-gadgets-store/internal/logger"
	"github.com/2063ti/flugede-gadgets-store/internal/models"
	"github.com/2063ti/flugede-gadgets-store/internal/payment/razorpay"
	"github.com/2063ti/flugede-gadgets-store/internal/queue"
	"github.com/2063ti/flugede-gadgets-store/internal/repository"
	"github.com/2063ti/flugede-gadgets-store/internal/service"
)

// Container is the dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo       repository.UserRepository
	ProductRepo    repository.ProductRepository
	CategoryRepo   repository.CategoryRepository
	BrandRepo      repository.BrandRepository
	AddressRepo    repository.AddressRepository
	CartRepo       repository.CartRepository
	WishlistRepo   repository.WishlistRepository
	CouponRepo     repository.CouponRepository
	OrderRepo      repository.OrderRepository
	ReturnRepo     repository.ReturnRequestRepository
	ReviewRepo     repository.ReviewRepository
	NewsletterRepo repository.NewsletterRepository
	ContactRepo    repository.ContactRepository

	// Services
	AuthService         *service.UserAuthService
	ProductService      *service.ProductService
	CartService         *service.CartService
	CouponService       *service.CouponService
	OrderService        *service.OrderService
	PaymentService      *service.PaymentService
	AddressService      *service.AddressService
	WishlistService     *service.WishlistService
	ReturnService       *service.ReturnService
	ReviewService       *service.ReviewService
	EngagementService   *service.EngagementService
	CatalogAdminService *service.CatalogAdminService
	CouponAdminService  *service.CouponAdminService
}

// NewContainer builds the container. Redis and the queue degrade to no-ops
// when not configured.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.BrandRepo = repository.NewBrandRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReturnRepo = repository.NewReturnRequestRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.NewsletterRepo = repository.NewNewsletterRepository(db)
	c.ContactRepo = repository.NewContactRepository(db)
}

func (c *Container) initServices() {
	cfg := c.Config

	// Online payments stay disabled until valid gateway credentials exist.
	var gateway service.PaymentGateway
	gatewayCfg := razorpay.Config{
		KeyID:     cfg.Razorpay.KeyID,
		KeySecret: cfg.Razorpay.KeySecret,
		Currency:  cfg.Razorpay.Currency,
	}
	if client, err := razorpay.NewClient(gatewayCfg); err == nil {
		gateway = client
	} else {
		logger.Warnw("provider_payment_gateway_disabled", "error", err)
	}

	expireAfter := time.Duration(cfg.Order.PaymentExpireMinutes) * time.Minute

	c.AuthService = service.NewUserAuthService(c.UserRepo, cfg.UserJWT, cfg.JWT, cfg.Security.PasswordPolicy)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo, c.BrandRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.CouponService)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.CartRepo,
		c.ProductRepo,
		c.CouponRepo,
		c.AddressRepo,
		c.CouponService,
		gateway,
		cfg.Razorpay.Currency,
		c.QueueClient,
		expireAfter,
	)
	c.PaymentService = service.NewPaymentService(c.OrderRepo, c.CartRepo, gateway)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.ReturnService = service.NewReturnService(c.ReturnRepo, c.OrderRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.OrderRepo, c.ProductRepo)
	c.EngagementService = service.NewEngagementService(c.NewsletterRepo, c.ContactRepo)
	c.CatalogAdminService = service.NewCatalogAdminService(c.ProductRepo, c.CategoryRepo, c.BrandRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo)
}
