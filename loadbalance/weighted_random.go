package loadbalance

import (
	"math/rand"

	"litecoin-rpc/registry"
)

// WeightedRandomBalancer picks endpoints with probability proportional to
// their Weight. A weight below 1 counts as 1.
type WeightedRandomBalancer struct{}

func (b *WeightedRandomBalancer) Pick(endpoints []registry.Endpoint) (*registry.Endpoint, error) {
	if len(endpoints) == 0 {
		return nil, ErrNoEndpoints
	}

	// 计算总权重
	totalWeight := 0
	for _, ep := range endpoints {
		totalWeight += weightOf(ep)
	}

	// 生成一个随机数，范围是0到总权重
	r := rand.Intn(totalWeight)
	for i := range endpoints {
		r -= weightOf(endpoints[i])
		if r < 0 {
			return &endpoints[i], nil
		}
	}
	return &endpoints[len(endpoints)-1], nil
}

func (b *WeightedRandomBalancer) Name() string {
	return "WeightedRandom"
}

func weightOf(ep registry.Endpoint) int {
	if ep.Weight < 1 {
		return 1
	}
	return ep.Weight
}
