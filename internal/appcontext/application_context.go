package appcontext

import (
	"context"
	"log"

	"github.com/RoyceAzure/lab/bookstore/internal/config"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/producer"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
)

type ApplicationContext struct {
	Cf *config.Config

	DbDao     *db.DbDao
	CartCache redis_repo.ICartCache
	Producer  producer.IOrderEventProducer

	BookService     service.IBookService
	CartService     service.ICartService
	FavoriteService service.IFavoriteService
	OrderService    service.IOrderService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	if err := app.Init(); err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	if err := app.setUpDbDao(); err != nil {
		return err
	}
	if err := app.setUpCartCache(); err != nil {
		return err
	}
	app.setUpProducer()
	app.setUpServices()
	return nil
}

func (app *ApplicationContext) setUpDbDao() error {
	log.Printf("Start setup db")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbDao = db.NewDbDao(conn)
	if err := app.DbDao.InitMigrate(); err != nil {
		return err
	}
	log.Printf("Finish setup db")
	return nil
}

func (app *ApplicationContext) setUpCartCache() error {
	log.Printf("Start setup redis")
	client, err := redis_repo.GetRedisClient(app.Cf.RedisAddr,
		redis_repo.WithPassword(app.Cf.RedisPassword))
	if err != nil {
		return err
	}
	app.CartCache = redis_repo.NewCartCache(client)
	log.Printf("Finish setup redis")
	return nil
}

func (app *ApplicationContext) setUpProducer() {
	log.Printf("Start setup kafka producer")
	app.Producer = producer.NewOrderEventProducer(app.Cf.KafkaBrokerList(), app.Cf.KafkaOrderTopic)
	log.Printf("Finish setup kafka producer")
}

func (app *ApplicationContext) setUpServices() {
	bookRepo := db.NewBookRepo(app.DbDao)
	cartStore := db.NewCartStore(app.DbDao)
	favoriteRepo := db.NewFavoriteRepo(app.DbDao)
	orderStore := db.NewOrderStore(app.DbDao)

	app.BookService = service.NewBookService(bookRepo)
	app.CartService = service.NewCartService(cartStore, app.CartCache)
	app.FavoriteService = service.NewFavoriteService(favoriteRepo, bookRepo)
	app.OrderService = service.NewOrderService(orderStore, cartStore, app.CartCache, app.Producer)
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	if app.Producer != nil {
		if err := app.Producer.Close(); err != nil {
			return err
		}
	}
	if app.DbDao != nil {
		sqlDB, err := app.DbDao.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
