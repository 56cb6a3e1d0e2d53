package testkit

import (
	"goagree/domain/agreement"
)

// Deterministic reference datasets for tests and the CLI demo. Each pair is a
// two-method comparison on the same subjects; values are fixed so every run
// reproduces the same statistics.

var bpObserver = []float64{
	174.7, 122.9, 127.3, 156.6, 181.2, 130, 102.8, 140.2,
	85.8, 127.2, 136.7, 167.3, 105.8, 79.3, 119.5, 95.3,
	149.1, 180.7, 108.9, 140.4, 172.9, 132, 159.5, 151.3,
	136.2, 136.9, 134.5, 159.2, 198.8, 116.3, 187.6, 108,
	154.9, 175.4, 149.5, 137.7, 111.7, 139.5, 159.8, 109.5,
	158.9, 96.1, 117.3, 150.6, 126, 149.5, 142.1, 135.8,
	101, 150.9, 169.9, 205.7, 104, 137, 187.4, 106.4,
	164.7, 171.2, 90.4, 142.3, 121.4, 101.2, 161, 154.7,
	128.1, 174.2, 148.1, 106, 116.6, 118.8, 136.2, 139.1,
	117.9, 128.2, 103.7, 95.1, 102.1, 165.2, 159.4, 45.9,
	129.2, 108.4, 111.1, 99.6, 108.3,
}
var bpMachine = []float64{
	186.5, 128.3, 159.5, 173, 178.4, 135.5, 112.2, 178.3,
	115.5, 148.7, 151.5, 188.9, 111.2, 122.2, 137.8, 134,
	168.7, 185.4, 111.7, 156.7, 194, 153.7, 175.5, 181.6,
	131.3, 130.9, 144.8, 145.4, 194.7, 139.2, 175.8, 125.6,
	141.3, 191.2, 172.8, 137.5, 148, 139.5, 180.8, 106,
	184, 107.5, 144.8, 159.6, 129.8, 167.8, 169.4, 162.6,
	120.2, 128.1, 161.9, 193.9, 113.7, 156.1, 188.5, 119,
	187, 180.8, 139.5, 160.2, 142, 124.6, 180.4, 171.2,
	124.1, 189.5, 149.5, 130.1, 146.6, 118.6, 159.5, 139.9,
	136.6, 162.2, 121.9, 134.3, 123.2, 176.3, 192.4, 182.7,
	168.8, 143.4, 118.1, 113.4, 116.7,
}
var volMethodA = []float64{
	51.48, 88.42, 75.73, 58.96, 92.08, 55.01, 68.76, 65.94,
	76.05, 50.91, 51.48, 73.37, 59.84, 67.58, 80, 80.68,
	89.9, 90.36, 80.19, 65.78, 93.64, 83.89, 82.62, 77.55,
	55.64, 71.47, 72.71, 76.57, 78.61, 58.5, 80.55, 55.12,
	67.42, 87.41, 60.64, 50, 77.26, 92.23, 88.21, 56.38,
	97.23, 50.78, 89.7, 80.78, 64.37, 83.07, 53.06, 80.21,
	52.25, 81.84,
}
var volMethodB = []float64{
	47.58, 79.98, 67.68, 54.16, 83.37, 50.67, 62.79, 58.13,
	70.09, 46.15, 47.1, 67.29, 53.13, 60.39, 74.16, 74.91,
	82.29, 81.61, 73.55, 58.66, 84.37, 79.29, 75.32, 70.29,
	49.51, 63.83, 71.06, 68.96, 71.64, 51.54, 71.23, 51.86,
	58.85, 81.62, 54.13, 45.27, 70.38, 80.56, 79.43, 49.99,
	84.55, 46.81, 80.86, 73.24, 58.2, 73.99, 48.2, 74.04,
	46.83, 73.03,
}
var fatMethodA = []float64{
	0.601, 0.6442, 0.7407, 0.8096, 0.9107, 0.9607, 0.9791, 0.9997,
	1.2074, 1.2721, 1.2112, 1.2767, 1.3512, 1.3941, 1.5034, 1.5778,
	1.587, 1.7214, 1.7546, 1.7528, 1.9007, 1.9208, 1.9707, 2.0572,
	2.2097, 2.2223, 2.2404, 2.3863, 2.428, 2.4333, 2.5173, 2.5703,
	2.6986, 2.7067, 2.798, 2.8946, 2.9157, 2.9117, 2.9813, 3.101,
}
var fatMethodB = []float64{
	0.599, 0.6789, 0.7055, 0.7597, 0.7817, 0.8547, 0.9593, 1.0619,
	0.9772, 1.0356, 1.2195, 1.2771, 1.3257, 1.4059, 1.4197, 1.4684,
	1.5822, 1.5709, 1.6608, 1.7856, 1.7608, 1.8638, 1.937, 1.9736,
	1.9441, 2.0546, 2.1596, 2.1368, 2.2181, 2.336, 2.375, 2.445,
	2.4398, 2.5548, 2.5866, 2.6131, 2.7151, 2.8422, 2.8956, 2.899,
}

// Single wraps a flat series as one observation per subject.
func Single(values []float64) agreement.Subjects {
	subjects := make(agreement.Subjects, len(values))
	for i, v := range values {
		subjects[i] = []float64{v}
	}
	return subjects
}

// BloodPressure returns paired systolic readings by an observer and a
// machine on 85 subjects, one observation each. Subjects 78 and 80
// (1-based) are gross outliers; see BloodPressureOutliers.
func BloodPressure() (x, y agreement.Subjects) {
	return Single(bpObserver), Single(bpMachine)
}

// BloodPressureOutliers lists the 0-based indices of the two outlying
// subjects in the blood pressure dataset.
var BloodPressureOutliers = [2]int{77, 79}

// BloodPressureExcluded returns the blood pressure dataset with the two
// outlying subjects removed.
func BloodPressureExcluded() (x, y agreement.Subjects) {
	keepX := make([]float64, 0, len(bpObserver)-2)
	keepY := make([]float64, 0, len(bpMachine)-2)
	for i := range bpObserver {
		if i == BloodPressureOutliers[0] || i == BloodPressureOutliers[1] {
			continue
		}
		keepX = append(keepX, bpObserver[i])
		keepY = append(keepY, bpMachine[i])
	}
	return Single(keepX), Single(keepY)
}

// PlasmaVolume returns paired plasma volume measurements (% of normal) by
// two methods on 50 subjects. The two methods disagree multiplicatively, so
// this dataset is the reference for log-transformed and ratio analyses.
func PlasmaVolume() (x, y agreement.Subjects) {
	return Single(volMethodA), Single(volMethodB)
}

// Fat returns paired fat measurements on 40 subjects whose bias grows with
// the magnitude of the measurement; the reference dataset for the
// regression extension.
func Fat() (x, y agreement.Subjects) {
	return Single(fatMethodA), Single(fatMethodB)
}
