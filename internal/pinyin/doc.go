// Package pinyin converts between the two pinyin encodings used across the
// corpus: diacritic tone marks (hǎo) and trailing tone numbers (hao3), plus
// the ü/v and frequency-annotation conventions of the character dataset.
package pinyin
