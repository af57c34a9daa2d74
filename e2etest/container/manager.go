package container

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/babylonlabs-io/staking-reward-distributor/internal/config"
	"github.com/babylonlabs-io/staking-reward-distributor/testutil"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	queueConfig "github.com/babylonlabs-io/staking-queue-client/config"
)

const (
	mongoReplicaSet = "rs0"
	rabbitUser      = "user"
	rabbitPassword  = "password"
)

// Manager is a wrapper around the docker pool used by e2e tests.
type Manager struct {
	cfg  ImageConfig
	pool *dockertest.Pool
}

func NewManager() (*Manager, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, err
	}
	pool.MaxWait = 2 * time.Minute

	return &Manager{cfg: NewImageConfig(), pool: pool}, nil
}

func (m *Manager) run(t *testing.T, opts *dockertest.RunOptions) (*dockertest.Resource, error) {
	suffix, err := testutil.RandomAlphaNum(4)
	if err != nil {
		return nil, err
	}
	opts.Name = fmt.Sprintf("%s-e2e-%s", opts.Repository, suffix)

	resource, err := m.pool.RunWithOptions(opts, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, err
	}

	t.Cleanup(func() {
		if err := m.pool.Purge(resource); err != nil {
			t.Logf("failed to purge %s: %v", opts.Name, err)
		}
	})
	return resource, nil
}

// RunMongo starts a single node replica set and waits until it has a primary.
func (m *Manager) RunMongo(t *testing.T, dbName string) (config.DbConfig, error) {
	resource, err := m.run(t, &dockertest.RunOptions{
		Repository: m.cfg.MongoRepository,
		Tag:        m.cfg.MongoVersion,
		Cmd:        []string{"--replSet", mongoReplicaSet, "--bind_ip_all"},
	})
	if err != nil {
		return config.DbConfig{}, err
	}

	address := fmt.Sprintf("mongodb://localhost:%s/?directConnection=true", resource.GetPort("27017/tcp"))
	if err := m.pool.Retry(func() error { return initiateReplicaSet(address) }); err != nil {
		return config.DbConfig{}, err
	}

	return config.DbConfig{DbName: dbName, Address: address}, nil
}

func (m *Manager) RunRabbitMQ(t *testing.T) (*queueConfig.QueueConfig, error) {
	resource, err := m.run(t, &dockertest.RunOptions{
		Repository: m.cfg.RabbitMQRepository,
		Tag:        m.cfg.RabbitMQVersion,
		Env: []string{
			"RABBITMQ_DEFAULT_USER=" + rabbitUser,
			"RABBITMQ_DEFAULT_PASS=" + rabbitPassword,
		},
	})
	if err != nil {
		return nil, err
	}

	cfg := &queueConfig.QueueConfig{
		QueueUser:              rabbitUser,
		QueuePassword:          rabbitPassword,
		Url:                    "localhost:" + resource.GetPort("5672/tcp"),
		QueueProcessingTimeout: 5 * time.Second,
		QueueType:              "quorum",
	}

	err = m.pool.Retry(func() error {
		conn, err := amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s", cfg.QueueUser, cfg.QueuePassword, cfg.Url))
		if err != nil {
			return err
		}
		return conn.Close()
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func initiateReplicaSet(address string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(address))
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx) //nolint:errcheck

	admin := client.Database("admin")

	var status bson.M
	if err := admin.RunCommand(ctx, bson.D{{Key: "replSetGetStatus", Value: 1}}).Decode(&status); err == nil {
		if state, ok := status["myState"].(int32); ok && state == 1 {
			return nil
		}
		return fmt.Errorf("replica set is not primary yet")
	}

	cmd := bson.D{{Key: "replSetInitiate", Value: bson.M{
		"_id":     mongoReplicaSet,
		"members": bson.A{bson.M{"_id": 0, "host": "localhost:27017"}},
	}}}
	if err := admin.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	return fmt.Errorf("replica set initiated, waiting for primary")
}
