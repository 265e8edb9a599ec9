package capability

// Attribute names shared between the probe collectors, the scoring engine,
// and the flag generator. Collectors may add attributes beyond this list;
// only the names below participate in scoring or flag generation.
const (
	// CPU
	KeyModelName         = "model_name"
	KeyArchitecture      = "architecture"
	KeyCores             = "cores"
	KeyThreads           = "threads"
	KeyBaseFreqMHz       = "base_freq_mhz"
	KeyMaxFreqMHz        = "max_freq_mhz"
	KeyCacheL1D          = "cache_l1d"
	KeyCacheL1I          = "cache_l1i"
	KeyCacheL2           = "cache_l2"
	KeyCacheL3           = "cache_l3"
	KeyHasSSE42          = "has_sse42"
	KeyHasAVX            = "has_avx"
	KeyHasAVX2           = "has_avx2"
	KeyHasAVX512F        = "has_avx512f"
	KeyHasAVX512DQ       = "has_avx512dq"
	KeyHasAVX512BW       = "has_avx512bw"
	KeyHasAVX512VL       = "has_avx512vl"
	KeyHasFMA            = "has_fma"
	KeyHasAESNI          = "has_aes_ni"
	KeyHasSHANI          = "has_sha_ni"
	KeyHasRDRAND         = "has_rdrand"
	KeyHasRDSEED         = "has_rdseed"
	KeyHasVMX            = "has_vmx"
	KeyHasSVM            = "has_svm"
	KeyHasTSX            = "has_tsx"
	KeyHasBMI1           = "has_bmi1"
	KeyHasBMI2           = "has_bmi2"
	KeyHasADX            = "has_adx"
	KeyHasCLFLUSHOPT     = "has_clflushopt"
	KeyHasCLWB           = "has_clwb"
	KeyCPUGeneration     = "cpu_generation"
	KeyMicroarchitecture = "microarchitecture"

	// Virtualization
	KeyVirtTechnology        = "technology"
	KeyVirtEnabled           = "enabled"
	KeyEPTSupported          = "ept_supported"
	KeyNPTSupported          = "npt_supported"
	KeyVPIDSupported         = "vpid_supported"
	KeyEPT1GBPages           = "ept_1gb_pages"
	KeyEPT2MBPages           = "ept_2mb_pages"
	KeyEPTADBits             = "ept_ad_bits"
	KeyUnrestrictedGuest     = "unrestricted_guest"
	KeyPostedInterrupts      = "posted_interrupts"
	KeyVMFuncSupported       = "vmfunc_supported"
	KeyDecodeAssists         = "decode_assists"
	KeyFlushByASID           = "flush_by_asid"
	KeyVMSwitchOverheadNs    = "estimated_vm_switch_overhead_ns"
	KeyMemOverheadPercent    = "estimated_memory_overhead_percent"

	// Storage
	KeyNVMeCount          = "nvme_count"
	KeyHasNVMe            = "has_nvme"
	KeyHasBlockStorage    = "has_block_storage"
	KeyBandwidthEstimated = "bandwidth_estimated"

	// Memory
	KeyTotalRAMGB           = "total_ram_gb"
	KeyAvailableRAMGB       = "available_ram_gb"
	KeyMemoryType           = "memory_type"
	KeyMemorySpeedMHz       = "speed_mhz"
	KeyMemoryChannels       = "channels"
	KeyHugepages2MSupported = "hugepages_2mb_supported"
	KeyHugepages1GSupported = "hugepages_1gb_supported"
	KeyHugepages2MCount     = "hugepages_2mb_count"
	KeyHugepages1GCount     = "hugepages_1gb_count"
	KeyNUMANodes            = "numa_nodes"
	KeyNUMAEnabled          = "numa_enabled"
	KeyMemBandwidthGBs      = "estimated_bandwidth_gb_s"

	// GPU
	KeyGPUPresent       = "present"
	KeyGPUVendor        = "vendor"
	KeyGPUModel         = "model"
	KeyGPUVRAMGB        = "vram_gb"
	KeyGPUPCIeGen       = "pcie_generation"
	KeyGPUPCIeLanes     = "pcie_lanes"
	KeyGPUDriverVersion = "driver_version"
	KeyGPUSupportsVGPU  = "supports_vgpu"
)
