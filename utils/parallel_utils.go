package utils

// PartitionMap splits MaxIndex items (elements) into ParallelDegree
// contiguous buckets with a maximum imbalance of one item.
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int // [kMin, kMax) of each bucket
}

func NewPartitionMap(parallelDegree, maxIndex int) (pm *PartitionMap) {
	if parallelDegree < 1 {
		parallelDegree = 1
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: parallelDegree,
		Partitions:     make([][2]int, parallelDegree),
	}
	var (
		size      = maxIndex / parallelDegree
		remainder = maxIndex % parallelDegree
		kMin      int
	)
	// The first remainder buckets take one extra item
	for bn := range pm.Partitions {
		kMax := kMin + size
		if bn < remainder {
			kMax++
		}
		pm.Partitions[bn] = [2]int{kMin, kMax}
		kMin = kMax
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bn int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bn][0], pm.Partitions[bn][1]
	return
}

func (pm *PartitionMap) GetBucketDimension(bn int) int {
	return pm.Partitions[bn][1] - pm.Partitions[bn][0]
}

// GetGlobalK maps an index local to bucket bn onto the full range.
func (pm *PartitionMap) GetGlobalK(kLocal, bn int) int {
	return pm.Partitions[bn][0] + kLocal
}
