// Package metrics scores parsed PSL documents.
//
// Four acceptance metrics are computed, each in [0.0, 1.0]:
//
//   - CSR, the fraction of header constraints satisfied by observed values
//   - HRR, which starts at 1.0 and is reduced for unsupported numbers,
//     unpaired hypotheses and risks without safety notes
//   - PSL coverage, the fraction of the seven mandatory sections present
//   - the 3C score, 0.34·clear + 0.33·cheap + 0.33·safe
//
// QualityScore combines them with DefaultWeights and Level maps the result
// to EXCELLENT, GOOD, FAIR or POOR.
package metrics
